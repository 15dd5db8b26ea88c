// Package types provides shared data structures for the FileBridge service.
//
// This package defines core types used across all components, ensuring
// type safety and consistent data structures.
//
// Core Types:
//   - Service: Service provider definition
//   - Tool: Service tool specification
//   - Parameter: Tool parameter specification
//   - Context: Execution context for operations
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Service tool execution
//   - DiscoverRequest: Intent-based service discovery
//
// Example Usage:
//
//	result := &types.Result{
//	    Success: true,
//	    Data:    map[string]interface{}{"path": "/workspace/notes.txt"},
//	}
package types
