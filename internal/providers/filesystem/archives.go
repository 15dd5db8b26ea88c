package filesystem

import (
	"archive/tar"
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ArchivesOps handles archive creation and extraction
type ArchivesOps struct {
	*FilesystemOps
}

// GetTools returns archive tool definitions
func (a *ArchivesOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.zip.create",
			Name:        "Create ZIP",
			Description: "Create ZIP archive from files or directories",
			Parameters: []types.Parameter{
				{Name: "sources", Type: "array", Description: "Paths to include", Required: true},
				{Name: "destination", Type: "string", Description: "Archive path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.zip.extract",
			Name:        "Extract ZIP",
			Description: "Extract ZIP archive",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Archive path", Required: true},
				{Name: "destination", Type: "string", Description: "Target directory", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.zip.list",
			Name:        "List ZIP",
			Description: "List ZIP archive contents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Archive path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.tar.create",
			Name:        "Create TAR",
			Description: "Create tar archive (gzip or zstd compressed)",
			Parameters: []types.Parameter{
				{Name: "sources", Type: "array", Description: "Paths to include", Required: true},
				{Name: "destination", Type: "string", Description: "Archive path", Required: true},
				{Name: "compression", Type: "string", Description: "gzip, zstd or none", Required: false},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.tar.extract",
			Name:        "Extract TAR",
			Description: "Extract tar archive, compression auto-detected",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Archive path", Required: true},
				{Name: "destination", Type: "string", Description: "Target directory", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.tar.list",
			Name:        "List TAR",
			Description: "List tar archive contents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Archive path", Required: true},
			},
			Returns: "array",
		},
	}
}

// CreateZip creates a ZIP archive
func (a *ArchivesOps) CreateZip(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sources, dst, errResult := a.archiveArgs(params, appCtx)
	if errResult != nil {
		return errResult, nil
	}

	out, err := os.Create(dst)
	if err != nil {
		return Failure(fmt.Sprintf("create failed: %v", err))
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	count := 0
	for _, src := range sources {
		err := walkArchiveSources(src, func(path, name string, info os.FileInfo) error {
			hdr, err := zip.FileInfoHeader(info)
			if err != nil {
				return err
			}
			hdr.Name = name
			hdr.Method = zip.Deflate
			w, err := zw.CreateHeader(hdr)
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(w, f)
			count++
			return err
		})
		if err != nil {
			zw.Close()
			return Failure(fmt.Sprintf("zip failed: %v", err))
		}
	}
	if err := zw.Close(); err != nil {
		return Failure(fmt.Sprintf("zip failed: %v", err))
	}

	return Success(map[string]interface{}{"created": true, "destination": dst, "files": count})
}

// ExtractZip extracts a ZIP archive
func (a *ArchivesOps) ExtractZip(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, dst, errResult := a.extractArgs(params, appCtx)
	if errResult != nil {
		return errResult, nil
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer r.Close()

	count := 0
	for _, file := range r.File {
		target, err := safeJoin(dst, file.Name)
		if err != nil {
			return Failure(err.Error())
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return Failure(fmt.Sprintf("extract failed: %v", err))
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return Failure(fmt.Sprintf("extract failed: %v", err))
		}

		rc, err := file.Open()
		if err != nil {
			return Failure(fmt.Sprintf("extract failed: %v", err))
		}
		err = writeStream(target, rc, file.Mode())
		rc.Close()
		if err != nil {
			return Failure(fmt.Sprintf("extract failed: %v", err))
		}
		count++
	}

	return Success(map[string]interface{}{"extracted": true, "destination": dst, "files": count})
}

// ListZip lists ZIP contents
func (a *ArchivesOps) ListZip(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	fullPath, err := a.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	r, err := zip.OpenReader(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer r.Close()

	entries := make([]interface{}, 0, len(r.File))
	for _, file := range r.File {
		entries = append(entries, map[string]interface{}{
			"name":            file.Name,
			"size":            file.UncompressedSize64,
			"compressed_size": file.CompressedSize64,
			"is_dir":          file.FileInfo().IsDir(),
		})
	}

	return Success(map[string]interface{}{"entries": entries, "count": len(entries), "path": path})
}

// CreateTar creates a tar archive with optional compression
func (a *ArchivesOps) CreateTar(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sources, dst, errResult := a.archiveArgs(params, appCtx)
	if errResult != nil {
		return errResult, nil
	}
	compression, _ := stringParam(params, "compression")
	if compression == "" {
		compression = compressionForPath(dst)
	}

	out, err := os.Create(dst)
	if err != nil {
		return Failure(fmt.Sprintf("create failed: %v", err))
	}
	defer out.Close()

	var w io.WriteCloser
	switch compression {
	case "gzip":
		w = gzip.NewWriter(out)
	case "zstd":
		zw, err := zstd.NewWriter(out)
		if err != nil {
			return Failure(fmt.Sprintf("zstd init failed: %v", err))
		}
		w = zw
	case "none":
		w = out
	default:
		return Failure(fmt.Sprintf("unsupported compression: %s", compression))
	}

	tw := tar.NewWriter(w)
	count := 0
	for _, src := range sources {
		err := walkArchiveSources(src, func(path, name string, info os.FileInfo) error {
			hdr, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			hdr.Name = name
			if err := tw.WriteHeader(hdr); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(tw, f)
			count++
			return err
		})
		if err != nil {
			return Failure(fmt.Sprintf("tar failed: %v", err))
		}
	}
	if err := tw.Close(); err != nil {
		return Failure(fmt.Sprintf("tar failed: %v", err))
	}
	if w != out {
		if err := w.Close(); err != nil {
			return Failure(fmt.Sprintf("compress failed: %v", err))
		}
	}

	return Success(map[string]interface{}{
		"created":     true,
		"destination": dst,
		"files":       count,
		"compression": compression,
	})
}

// ExtractTar extracts a tar archive
func (a *ArchivesOps) ExtractTar(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, dst, errResult := a.extractArgs(params, appCtx)
	if errResult != nil {
		return errResult, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer f.Close()

	r, closer, err := decompressReader(f, path)
	if err != nil {
		return Failure(fmt.Sprintf("decompress failed: %v", err))
	}
	if closer != nil {
		defer closer()
	}

	tr := tar.NewReader(r)
	count := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Failure(fmt.Sprintf("extract failed: %v", err))
		}

		target, err := safeJoin(dst, hdr.Name)
		if err != nil {
			return Failure(err.Error())
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return Failure(fmt.Sprintf("extract failed: %v", err))
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return Failure(fmt.Sprintf("extract failed: %v", err))
			}
			if err := writeStream(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return Failure(fmt.Sprintf("extract failed: %v", err))
			}
			count++
		}
	}

	return Success(map[string]interface{}{"extracted": true, "destination": dst, "files": count})
}

// ListTar lists tar contents
func (a *ArchivesOps) ListTar(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	fullPath, err := a.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer f.Close()

	r, closer, err := decompressReader(f, fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("decompress failed: %v", err))
	}
	if closer != nil {
		defer closer()
	}

	var entries []interface{}
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Failure(fmt.Sprintf("list failed: %v", err))
		}
		entries = append(entries, map[string]interface{}{
			"name":   hdr.Name,
			"size":   hdr.Size,
			"is_dir": hdr.Typeflag == tar.TypeDir,
		})
	}

	return Success(map[string]interface{}{"entries": entries, "count": len(entries), "path": path})
}

func (a *ArchivesOps) archiveArgs(params map[string]interface{}, appCtx *types.Context) ([]string, string, *types.Result) {
	fails := func(msg string) ([]string, string, *types.Result) {
		r, _ := Failure(msg)
		return nil, "", r
	}

	rawSources, ok := params["sources"].([]interface{})
	if !ok || len(rawSources) == 0 {
		return fails("sources array required")
	}
	dst, ok := stringParam(params, "destination")
	if !ok {
		return fails("destination parameter required")
	}

	fullDst, err := a.ResolvePath(dst, appCtx)
	if err != nil {
		return fails(err.Error())
	}

	sources := make([]string, 0, len(rawSources))
	for _, raw := range rawSources {
		src, ok := raw.(string)
		if !ok || src == "" {
			return fails("each source must be a path string")
		}
		full, err := a.ResolvePath(src, appCtx)
		if err != nil {
			return fails(err.Error())
		}
		sources = append(sources, full)
	}
	return sources, fullDst, nil
}

func (a *ArchivesOps) extractArgs(params map[string]interface{}, appCtx *types.Context) (string, string, *types.Result) {
	fails := func(msg string) (string, string, *types.Result) {
		r, _ := Failure(msg)
		return "", "", r
	}

	path, ok := stringParam(params, "path")
	if !ok {
		return fails("path parameter required")
	}
	dst, ok := stringParam(params, "destination")
	if !ok {
		return fails("destination parameter required")
	}

	fullPath, err := a.ResolvePath(path, appCtx)
	if err != nil {
		return fails(err.Error())
	}
	fullDst, err := a.ResolvePath(dst, appCtx)
	if err != nil {
		return fails(err.Error())
	}
	if err := os.MkdirAll(fullDst, 0o755); err != nil {
		return fails(fmt.Sprintf("create destination failed: %v", err))
	}
	return fullPath, fullDst, nil
}

// walkArchiveSources visits src (or every file under it when src is a
// directory) with archive-relative names.
func walkArchiveSources(src string, visit func(path, name string, info os.FileInfo) error) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return visit(src, filepath.Base(src), info)
	}

	base := filepath.Base(src)
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		return visit(path, filepath.ToSlash(filepath.Join(base, rel)), info)
	})
}

// safeJoin joins an archive entry name to the destination, rejecting
// entries that would land outside it.
func safeJoin(dst, name string) (string, error) {
	target := filepath.Join(dst, filepath.Clean(name))
	if target != dst && !strings.HasPrefix(target, dst+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}

func writeStream(path string, r io.Reader, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm()|0o200)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func compressionForPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return "gzip"
	case strings.HasSuffix(path, ".tar.zst"):
		return "zstd"
	default:
		return "none"
	}
}

// decompressReader wraps f based on the archive extension.
func decompressReader(f *os.File, path string) (io.Reader, func(), error) {
	switch compressionForPath(path) {
	case "gzip":
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return gr, func() { gr.Close() }, nil
	case "zstd":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return f, nil, nil
	}
}
