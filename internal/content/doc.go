// Package content defines the entities managed by the admin console:
// pictures, leadership-team profiles and activity records.
//
// Entities are plain structs with JSON tags matching the console's backup
// files. NewPicture and NewLeader trim and default a candidate and then
// enforce the required fields, so every stored entity passed through them.
//
// The package also owns the error taxonomy shared by the store, the activity
// log and backup/restore (see Error and the Is* helpers).
package content
