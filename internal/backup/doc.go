// Package backup exports and restores the console's collections.
//
// A full backup is a JSON object:
//
//	{
//	  "timestamp": "2026-10-18T09:30:00Z",
//	  "version": "1.0",
//	  "pictures": [...],
//	  "leaders": [...]
//	}
//
// with an optional "activities" array. Exporting a single collection yields
// a bare JSON array of that entity type.
//
// Import is all-or-nothing: the blob is parsed and checked for the required
// keys before any store is touched, and a store write that fails part-way
// rolls the earlier stores back. Entities themselves are trusted as written;
// Check offers a separate dry-run against the embedded CUE schema.
package backup
