// Package file provides the TOML configuration store.
//
// Keys use dot notation ("backend.base_url") and are written back as nested
// tables, so the file stays hand-editable:
//
//	[backend]
//	base_url = "http://localhost:8000"
//
//	[query]
//	top_k = 5
package file
