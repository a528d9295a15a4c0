// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"business-advisor/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name        string
	PackageName string
	TaskType    string
	Description string
	Timeout     time.Duration
	InputFields []Field
}

// Field is one top-level property of an activity's input schema.
type Field struct {
	Name    string
	GoType  string
	JSONTag string
	Comment string
}

// inputFields extracts top-level properties from a JSON schema object, sorted by name.
func inputFields(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	fields := make([]Field, 0, len(props))
	for name, raw := range props {
		details, _ := raw.(map[string]interface{})
		f := Field{
			Name:    upperFirst(name),
			GoType:  goTypeFromSchema(details),
			JSONTag: fmt.Sprintf("`json:\"%s\"`", name),
		}
		if desc, ok := details["description"].(string); ok && desc != "" {
			f.Comment = " // " + desc
		}
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// goTypeFromSchema maps JSON schema types to Go types
func goTypeFromSchema(details map[string]interface{}) string {
	switch details["type"] {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		if items, ok := details["items"].(map[string]interface{}); ok {
			return "[]" + goTypeFromSchema(items)
		}
		return "[]interface{}"
	case "object":
		if values, ok := details["additionalProperties"].(map[string]interface{}); ok {
			return "map[string]" + goTypeFromSchema(values)
		}
		return "map[string]interface{}"
	default:
		return "interface{}"
	}
}

// upperFirst makes the first character uppercase
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const configTemplate = `// internal/workers/{{ .Dir }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ printf "%d" .Timeout.Milliseconds }} * time.Millisecond,
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Dir }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .GoType }} {{ .JSONTag }}{{ .Comment }}
{{- end }}
}

type Output struct {
}
`

const handlerTemplate = `// internal/workers/{{ .Dir }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "business-advisor/internal/common/errors"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/common/metrics"
	"business-advisor/internal/common/validation"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Handler runs {{ .Name }} jobs.{{ if .Description }} {{ .Description }}{{ end }}
type Handler struct {
	config       *Config
	logger       logger.Logger
	validator    *validation.Validator
	errorHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		validator:    validator,
		errorHandler: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := metrics.StartJob(TaskType)

	input, err := h.parseInput(job.Variables)
	if err != nil {
		h.failJob(client, job, timer, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(client, job, timer, err)
		return
	}

	h.completeJob(client, job, output)
	timer.Completed()
}

func (h *Handler) parseInput(variables string) (*Input, error) {
	if h.validator != nil {
		if err := h.validator.Check(TaskType, variables); err != nil {
			return nil, err
		}
	}
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError("parse input: " + err.Error())
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Output{}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{"error": err})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	timer.Failed(string(apperrors.FromDomain(err).Code))
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const testTemplate = `// internal/workers/{{ .Dir }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-advisor/internal/common/logger"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestHandler_Execute_Cancelled(t *testing.T) {
	handler := createTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Execute(ctx, &Input{})
	assert.ErrorIs(t, err, context.Canceled)
}
`

var templates = []struct {
	file string
	text string
}{
	{"config.go", configTemplate},
	{"models.go", modelsTemplate},
	{"handler.go", handlerTemplate},
	{"handler_test.go", testTemplate},
}

// generate writes a formatted worker scaffold for activity under outputDir and returns its directory.
func generate(activity *registry.Activity, outputDir string) (string, error) {
	timeout := 30 * time.Second
	if activity.Timeout != "" {
		d, err := time.ParseDuration(activity.Timeout)
		if err != nil {
			return "", fmt.Errorf("invalid timeout %q: %w", activity.Timeout, err)
		}
		timeout = d
	}

	data := struct {
		WorkerData
		Dir string
	}{
		WorkerData: WorkerData{
			Name:        activity.DisplayName,
			PackageName: strings.ReplaceAll(activity.ID, "-", ""),
			TaskType:    activity.TaskType,
			Description: activity.Description,
			Timeout:     timeout,
			InputFields: inputFields(activity.InputSchema),
		},
		Dir: filepath.ToSlash(filepath.Join(strings.ToLower(activity.Category), activity.ID)),
	}

	workerDir := filepath.Join(outputDir, strings.ToLower(activity.Category), activity.ID)
	if err := os.MkdirAll(workerDir, 0755); err != nil {
		return "", fmt.Errorf("error creating directory: %w", err)
	}

	for _, t := range templates {
		tmpl, err := template.New(t.file).Parse(t.text)
		if err != nil {
			return "", fmt.Errorf("error parsing template %s: %w", t.file, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("error executing template for %s: %w", t.file, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return "", fmt.Errorf("generated %s does not parse: %w", t.file, err)
		}
		if err := os.WriteFile(filepath.Join(workerDir, t.file), src, 0644); err != nil {
			return "", fmt.Errorf("error writing %s: %w", t.file, err)
		}
	}
	return workerDir, nil
}

func main() {
	taskType := flag.String("activity", "", "Task type from the registry (e.g., compute-market-indicators)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "", "Path to the activity registry JSON file (default: embedded registry)")
	flag.Parse()

	if *taskType == "" {
		fmt.Println("Usage: worker-generator --activity <taskType> [--output <dir>] [--registry <path>]")
		os.Exit(1)
	}

	reg, err := registry.LoadOrDefault(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}
	activity, ok := reg.Activity(*taskType)
	if !ok {
		fmt.Printf("Activity '%s' not found in registry\n", *taskType)
		os.Exit(1)
	}

	workerDir, err := generate(activity, *outputDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Worker scaffold generated at: %s\n", workerDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute in handler.go and fill in Output\n")
	fmt.Printf("  2. Map new domain errors in internal/common/errors FromDomain\n")
	fmt.Printf("  3. Register the worker in cmd/worker-manager/main.go\n")
	fmt.Printf("  4. Add its settings under workers: in configs/config.yaml\n")
}
