package backup

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/greenline/internal/content"
)

//go:embed schema.cue
var schemaCUE string

// Issue is one schema violation found by Check.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// Check validates blob against the backup schema without importing it.
// It reports entity-level problems (blank required fields, orders below 1,
// unknown activity types) that Import would accept as-is.
//
// A blob that is not well-formed JSON is a parse error; schema violations
// are returned as issues with a nil error.
func Check(blob []byte) ([]Issue, error) {
	if !json.Valid(blob) {
		return nil, content.NewParseError("backup is not well-formed JSON", nil)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile backup schema: %w", err)
	}

	// JSON is valid CUE, so the blob compiles directly.
	data := ctx.CompileBytes(blob, cue.Filename("backup.json"))
	if err := data.Err(); err != nil {
		return nil, content.NewParseError("backup could not be loaded", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Backup")).Unify(data)
	err := v.Validate(cue.Concrete(true))
	if err == nil {
		return []Issue{}, nil
	}

	errs := cueerrors.Errors(err)
	issues := make([]Issue, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		issues = append(issues, Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	return issues, nil
}
