package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GriffinCanCode/FileBridge/internal/shared/types"
	"github.com/google/uuid"
)

// CollectionsOps manages named groups of workspace files. A collection
// is a JSON manifest under the collections directory; items are
// workspace-relative paths.
type CollectionsOps struct {
	*FilesystemOps
}

// Collection is a persisted manifest.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
	Items       []string  `json:"items"`
}

// GetTools returns collection tool definitions
func (c *CollectionsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.collection.create",
			Name:        "Create Collection",
			Description: "Create a named collection of files",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Description: "Collection name", Required: true},
				{Name: "description", Type: "string", Description: "Collection description", Required: false},
				{Name: "items", Type: "array", Description: "Initial file paths", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.collection.add",
			Name:        "Add to Collection",
			Description: "Add file paths to a collection",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Collection ID", Required: true},
				{Name: "items", Type: "array", Description: "File paths to add", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.collection.get",
			Name:        "Get Collection",
			Description: "Read a collection manifest",
			Parameters: []types.Parameter{
				{Name: "id", Type: "string", Description: "Collection ID", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.collection.list",
			Name:        "List Collections",
			Description: "List all collections",
			Parameters:  []types.Parameter{},
			Returns:     "array",
		},
	}
}

// Create creates a collection
func (c *CollectionsOps) Create(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	name, ok := stringParam(params, "name")
	if !ok {
		return Failure("name parameter required")
	}
	description, _ := stringParam(params, "description")

	items, errResult := c.itemPaths(params["items"], appCtx)
	if errResult != nil {
		return errResult, nil
	}

	now := time.Now().UTC()
	col := Collection{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Created:     now,
		Updated:     now,
		Items:       items,
	}

	if err := c.save(&col); err != nil {
		return Failure(fmt.Sprintf("save failed: %v", err))
	}

	return Success(collectionData(&col))
}

// Add appends items to a collection
func (c *CollectionsOps) Add(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	id, ok := stringParam(params, "id")
	if !ok {
		return Failure("id parameter required")
	}
	items, errResult := c.itemPaths(params["items"], appCtx)
	if errResult != nil {
		return errResult, nil
	}
	if len(items) == 0 {
		return Failure("items parameter required")
	}

	col, err := c.load(id)
	if err != nil {
		return Failure(fmt.Sprintf("load failed: %v", err))
	}

	existing := make(map[string]bool, len(col.Items))
	for _, item := range col.Items {
		existing[item] = true
	}
	for _, item := range items {
		if !existing[item] {
			col.Items = append(col.Items, item)
			existing[item] = true
		}
	}
	col.Updated = time.Now().UTC()

	if err := c.save(col); err != nil {
		return Failure(fmt.Sprintf("save failed: %v", err))
	}

	return Success(collectionData(col))
}

// Get reads a collection
func (c *CollectionsOps) Get(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	id, ok := stringParam(params, "id")
	if !ok {
		return Failure("id parameter required")
	}

	col, err := c.load(id)
	if err != nil {
		return Failure(fmt.Sprintf("load failed: %v", err))
	}

	return Success(collectionData(col))
}

// List lists all collections
func (c *CollectionsOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	entries, err := os.ReadDir(c.Workspace.CollectionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return Success(map[string]interface{}{"collections": []interface{}{}, "count": 0})
		}
		return Failure(fmt.Sprintf("list failed: %v", err))
	}

	collections := []interface{}{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		col, err := c.load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		collections = append(collections, map[string]interface{}{
			"id":         col.ID,
			"name":       col.Name,
			"item_count": len(col.Items),
			"updated":    col.Updated,
		})
	}

	return Success(map[string]interface{}{"collections": collections, "count": len(collections)})
}

// itemPaths validates that every item resolves inside the workspace
// and returns the workspace-relative forms.
func (c *CollectionsOps) itemPaths(raw interface{}, appCtx *types.Context) ([]string, *types.Result) {
	arr, ok := raw.([]interface{})
	if !ok {
		return []string{}, nil
	}

	items := make([]string, 0, len(arr))
	for _, entry := range arr {
		item, ok := entry.(string)
		if !ok || item == "" {
			r, _ := Failure("each item must be a path string")
			return nil, r
		}
		full, err := c.ResolvePath(item, appCtx)
		if err != nil {
			r, _ := Failure(err.Error())
			return nil, r
		}
		rel, err := filepath.Rel(c.Workspace.Root, full)
		if err != nil {
			r, _ := Failure(err.Error())
			return nil, r
		}
		items = append(items, filepath.ToSlash(rel))
	}
	return items, nil
}

func (c *CollectionsOps) manifestPath(id string) string {
	return filepath.Join(c.Workspace.CollectionsDir(), id+".json")
}

func (c *CollectionsOps) load(id string) (*Collection, error) {
	if id != filepath.Base(id) {
		return nil, fmt.Errorf("invalid collection id")
	}
	raw, err := os.ReadFile(c.manifestPath(id))
	if err != nil {
		return nil, err
	}
	var col Collection
	if err := json.Unmarshal(raw, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

func (c *CollectionsOps) save(col *Collection) error {
	if err := os.MkdirAll(c.Workspace.CollectionsDir(), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(c.manifestPath(col.ID), raw)
}

func collectionData(col *Collection) map[string]interface{} {
	items := make([]interface{}, len(col.Items))
	for i, item := range col.Items {
		items[i] = item
	}
	return map[string]interface{}{
		"id":          col.ID,
		"name":        col.Name,
		"description": col.Description,
		"created":     col.Created,
		"updated":     col.Updated,
		"items":       items,
		"item_count":  len(items),
	}
}
