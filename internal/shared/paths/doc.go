// Package paths provides the standardized workspace layout for FileBridge.
//
// All file tools operate inside a single workspace root supplied by
// configuration. The root is divided into fixed subdirectories that
// mirror the areas the AI client works with:
//
//	media/        images, video, audio
//	cache/        transient derived data
//	temp/         scratch space
//	documents/    text and office documents
//	userdata/     app-scoped user files
//	collections/  collection manifests
//
// Workspace resolves relative tool paths into this layout and rejects
// paths that escape the root. Confinement happens at the dispatch
// boundary; providers receive already-resolved absolute paths.
package paths
