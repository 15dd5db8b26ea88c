// Package filesystem provides file and directory tools for AI-driven apps.
//
// Tools are grouped by concern (basic I/O, directories, destructive
// operations, metadata, search, structured formats, archives,
// collections). Destructive operations route through Mutator, which
// validates, optionally backs up, mutates, and verifies every change
// so the client always learns the true post-operation state.
//
// All paths are resolved against the configured workspace before any
// filesystem call; escapes are rejected at the boundary.
package filesystem
