package filesystem

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
)

// FormatsOps handles structured file formats
type FormatsOps struct {
	*FilesystemOps
}

// GetTools returns format tool definitions
func (f *FormatsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.json.read",
			Name:        "Read JSON",
			Description: "Parse JSON file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.json.write",
			Name:        "Write JSON",
			Description: "Write data as formatted JSON",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.yaml.read",
			Name:        "Read YAML",
			Description: "Parse YAML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.yaml.write",
			Name:        "Write YAML",
			Description: "Write data as YAML",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.toml.read",
			Name:        "Read TOML",
			Description: "Parse TOML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.toml.write",
			Name:        "Write TOML",
			Description: "Write data as TOML",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.csv.read",
			Name:        "Read CSV",
			Description: "Parse CSV file into records",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "header", Type: "boolean", Description: "First row is a header", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.csv.write",
			Name:        "Write CSV",
			Description: "Write records as CSV",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "records", Type: "array", Description: "Array of row arrays", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// ReadJSON parses a JSON file
func (f *FormatsOps) ReadJSON(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return f.readStructured(params, appCtx, "json", func(raw []byte) (interface{}, error) {
		var data interface{}
		err := json.Unmarshal(raw, &data)
		return data, err
	})
}

// WriteJSON writes data as formatted JSON
func (f *FormatsOps) WriteJSON(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return f.writeStructured(params, appCtx, "json", func(data interface{}) ([]byte, error) {
		return json.MarshalIndent(data, "", "  ")
	})
}

// ReadYAML parses a YAML file
func (f *FormatsOps) ReadYAML(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return f.readStructured(params, appCtx, "yaml", func(raw []byte) (interface{}, error) {
		var data interface{}
		err := yaml.Unmarshal(raw, &data)
		return data, err
	})
}

// WriteYAML writes data as YAML
func (f *FormatsOps) WriteYAML(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return f.writeStructured(params, appCtx, "yaml", yaml.Marshal)
}

// ReadTOML parses a TOML file
func (f *FormatsOps) ReadTOML(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return f.readStructured(params, appCtx, "toml", func(raw []byte) (interface{}, error) {
		var data map[string]interface{}
		err := toml.Unmarshal(raw, &data)
		return data, err
	})
}

// WriteTOML writes data as TOML
func (f *FormatsOps) WriteTOML(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return f.writeStructured(params, appCtx, "toml", toml.Marshal)
}

// ReadCSV parses a CSV file
func (f *FormatsOps) ReadCSV(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := f.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return Failure(fmt.Sprintf("csv parse failed: %v", err))
	}

	if boolParam(params, "header", false) && len(records) > 0 {
		header := records[0]
		rows := make([]interface{}, 0, len(records)-1)
		for _, record := range records[1:] {
			row := map[string]interface{}{}
			for i, field := range record {
				if i < len(header) {
					row[header[i]] = field
				}
			}
			rows = append(rows, row)
		}
		return Success(map[string]interface{}{"rows": rows, "header": header, "count": len(rows), "path": path})
	}

	rows := make([]interface{}, len(records))
	for i, record := range records {
		row := make([]interface{}, len(record))
		for j, field := range record {
			row[j] = field
		}
		rows[i] = row
	}
	return Success(map[string]interface{}{"rows": rows, "count": len(rows), "path": path})
}

// WriteCSV writes records as CSV
func (f *FormatsOps) WriteCSV(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	rawRecords, ok := params["records"].([]interface{})
	if !ok {
		return Failure("records parameter required")
	}

	fullPath, err := f.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, rawRow := range rawRecords {
		row, ok := rawRow.([]interface{})
		if !ok {
			return Failure("each record must be an array")
		}
		fields := make([]string, len(row))
		for i, field := range row {
			fields[i] = fmt.Sprintf("%v", field)
		}
		if err := w.Write(fields); err != nil {
			return Failure(fmt.Sprintf("csv write failed: %v", err))
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Failure(fmt.Sprintf("csv write failed: %v", err))
	}

	if err := writeAtomic(fullPath, buf.Bytes()); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "rows": len(rawRecords)})
}

func (f *FormatsOps) readStructured(params map[string]interface{}, appCtx *types.Context, format string, parse func([]byte) (interface{}, error)) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}

	fullPath, err := f.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}

	data, err := parse(raw)
	if err != nil {
		return Failure(fmt.Sprintf("%s parse failed: %v", format, err))
	}

	return Success(map[string]interface{}{"data": data, "path": path})
}

func (f *FormatsOps) writeStructured(params map[string]interface{}, appCtx *types.Context, format string, marshal func(interface{}) ([]byte, error)) (*types.Result, error) {
	path, ok := stringParam(params, "path")
	if !ok {
		return Failure("path parameter required")
	}
	data, hasData := params["data"]
	if !hasData {
		return Failure("data parameter required")
	}

	fullPath, err := f.ResolvePath(path, appCtx)
	if err != nil {
		return Failure(err.Error())
	}

	raw, err := marshal(data)
	if err != nil {
		return Failure(fmt.Sprintf("%s encode failed: %v", format, err))
	}

	if err := writeAtomic(fullPath, raw); err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}

	return Success(map[string]interface{}{"written": true, "path": path, "size": len(raw)})
}
