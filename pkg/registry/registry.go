// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

//go:embed activity-registry.json
var defaultRegistry []byte

// Default returns the registry compiled into the binary.
func Default() (*ActivityRegistry, error) {
	return Parse(defaultRegistry)
}

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadOrDefault reads path, or the embedded registry when path is empty.
func LoadOrDefault(path string) (*ActivityRegistry, error) {
	if path == "" {
		return Default()
	}
	return LoadRegistry(path)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	return &reg, nil
}

// Check reports structural problems: missing task types, duplicates, unparsable timeouts.
func (r *ActivityRegistry) Check() []string {
	var problems []string
	seen := make(map[string]bool)
	for _, a := range r.Activities {
		if a.TaskType == "" {
			problems = append(problems, fmt.Sprintf("activity %q has no taskType", a.ID))
			continue
		}
		if seen[a.TaskType] {
			problems = append(problems, fmt.Sprintf("duplicate taskType %q", a.TaskType))
		}
		seen[a.TaskType] = true
		if a.InputSchema == nil {
			problems = append(problems, fmt.Sprintf("%s: missing inputSchema", a.TaskType))
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", a.TaskType, a.Timeout))
			}
		}
		if a.Retries < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative retries", a.TaskType))
		}
	}
	return problems
}
