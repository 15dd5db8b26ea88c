package filesystem

import (
	"path/filepath"
	"strings"
)

// File kinds used by scan, metadata and media tools.
const (
	KindImage      = "image"
	KindVideo      = "video"
	KindAudio      = "audio"
	KindText       = "text"
	KindCode       = "code"
	KindData       = "data"
	KindDocument   = "document"
	KindArchive    = "archive"
	KindExecutable = "executable"
	KindUnknown    = "unknown"
)

var kindsByExtension = map[string]string{
	".jpg": KindImage, ".jpeg": KindImage, ".png": KindImage, ".gif": KindImage,
	".bmp": KindImage, ".webp": KindImage, ".svg": KindImage, ".tiff": KindImage,
	".heic": KindImage, ".ico": KindImage,

	".mp4": KindVideo, ".mkv": KindVideo, ".avi": KindVideo, ".mov": KindVideo,
	".wmv": KindVideo, ".flv": KindVideo, ".webm": KindVideo, ".m4v": KindVideo,

	".mp3": KindAudio, ".wav": KindAudio, ".flac": KindAudio, ".aac": KindAudio,
	".ogg": KindAudio, ".wma": KindAudio, ".m4a": KindAudio, ".opus": KindAudio,

	".txt": KindText, ".md": KindText, ".rst": KindText, ".log": KindText,

	".go": KindCode, ".py": KindCode, ".js": KindCode, ".ts": KindCode,
	".c": KindCode, ".cpp": KindCode, ".h": KindCode, ".rs": KindCode,
	".java": KindCode, ".rb": KindCode, ".sh": KindCode, ".html": KindCode,
	".css": KindCode, ".sql": KindCode,

	".json": KindData, ".yaml": KindData, ".yml": KindData, ".toml": KindData,
	".csv": KindData, ".xml": KindData, ".parquet": KindData,

	".pdf": KindDocument, ".doc": KindDocument, ".docx": KindDocument,
	".xls": KindDocument, ".xlsx": KindDocument, ".ppt": KindDocument,
	".pptx": KindDocument, ".odt": KindDocument, ".epub": KindDocument,

	".zip": KindArchive, ".tar": KindArchive, ".gz": KindArchive,
	".tgz": KindArchive, ".zst": KindArchive, ".bz2": KindArchive,
	".xz": KindArchive, ".rar": KindArchive, ".7z": KindArchive,

	".exe": KindExecutable, ".msi": KindExecutable, ".dll": KindExecutable,
	".so": KindExecutable, ".dylib": KindExecutable, ".app": KindExecutable,
	".deb": KindExecutable, ".rpm": KindExecutable,
}

// KindOf classifies a path by its extension.
func KindOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := kindsByExtension[ext]; ok {
		return kind
	}
	return KindUnknown
}
