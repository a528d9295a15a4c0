// cmd/tools/worker-generator/main_test.go
package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-advisor/pkg/registry"
)

func TestGoTypeFromSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]interface{}
		want   string
	}{
		{"string", map[string]interface{}{"type": "string"}, "string"},
		{"integer", map[string]interface{}{"type": "integer"}, "int"},
		{"number", map[string]interface{}{"type": "number"}, "float64"},
		{"boolean", map[string]interface{}{"type": "boolean"}, "bool"},
		{"typed array", map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}}, "[]float64"},
		{"untyped array", map[string]interface{}{"type": "array"}, "[]interface{}"},
		{"int map", map[string]interface{}{"type": "object", "additionalProperties": map[string]interface{}{"type": "integer"}}, "map[string]int"},
		{"object", map[string]interface{}{"type": "object"}, "map[string]interface{}"},
		{"missing", map[string]interface{}{}, "interface{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, goTypeFromSchema(tt.schema))
		})
	}
}

func TestGenerate_FromEmbeddedRegistry(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	for _, activity := range reg.Activities {
		activity := activity
		t.Run(activity.TaskType, func(t *testing.T) {
			dir, err := generate(&activity, t.TempDir())
			require.NoError(t, err)

			fset := token.NewFileSet()
			for _, name := range []string{"config.go", "models.go", "handler.go", "handler_test.go"} {
				path := filepath.Join(dir, name)
				_, err := parser.ParseFile(fset, path, nil, parser.AllErrors)
				assert.NoError(t, err, name)
			}

			handler, err := os.ReadFile(filepath.Join(dir, "handler.go"))
			require.NoError(t, err)
			assert.Contains(t, string(handler), `TaskType = "`+activity.TaskType+`"`)
		})
	}
}

func TestGenerate_InputFields(t *testing.T) {
	activity := &registry.Activity{
		ID:          "rank-buyers",
		DisplayName: "Rank Buyers",
		Category:    "Market",
		TaskType:    "rank-buyers",
		Timeout:     "2s",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"limit":  map[string]interface{}{"type": "integer", "description": "maximum buyers returned"},
				"region": map[string]interface{}{"type": "string"},
			},
		},
	}

	dir, err := generate(activity, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("market", "rank-buyers"), filepath.Join(filepath.Base(filepath.Dir(dir)), filepath.Base(dir)))

	models, err := os.ReadFile(filepath.Join(dir, "models.go"))
	require.NoError(t, err)
	assert.Contains(t, string(models), "package rankbuyers")
	assert.Regexp(t, `Limit\s+int\s+`+"`json:\"limit\"`"+`\s+// maximum buyers returned`, string(models))

	config, err := os.ReadFile(filepath.Join(dir, "config.go"))
	require.NoError(t, err)
	assert.Contains(t, string(config), "2000 * time.Millisecond")
}

func TestGenerate_InvalidTimeout(t *testing.T) {
	_, err := generate(&registry.Activity{ID: "x", TaskType: "x", Timeout: "soon"}, t.TempDir())
	assert.Error(t, err)
}
