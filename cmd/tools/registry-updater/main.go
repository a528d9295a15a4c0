// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"business-advisor/internal/common/validation"
	"business-advisor/pkg/registry"
)

func main() {
	if len(os.Args) < 2 {
		help(os.Stdout)
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		path := fs.String("path", "", "Registry file (default: embedded registry)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		reg, err := registry.LoadOrDefault(*path)
		if err != nil {
			return err
		}
		return listActivities(reg, out)

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		path := fs.String("path", "", "Registry file (default: embedded registry)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		reg, err := registry.LoadOrDefault(*path)
		if err != nil {
			return err
		}
		if err := validateRegistry(reg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Registry validation passed. Found %d activities.\n", len(reg.Activities))
		return nil

	case "update":
		fs := flag.NewFlagSet("update", flag.ContinueOnError)
		path := fs.String("path", "configs/activity-registry.json", "Registry file to update")
		taskType := fs.String("taskType", "", "Task type of the activity to update")
		field := fs.String("field", "", "Field to update (status, version, description, timeout, retries)")
		value := fs.String("value", "", "New value for the field")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *taskType == "" || *field == "" || *value == "" {
			return fmt.Errorf("taskType, field, and value are required for update")
		}
		reg, err := registry.LoadRegistry(*path)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		if err := updateActivity(reg, *taskType, *field, *value); err != nil {
			return err
		}
		if err := validateRegistry(reg); err != nil {
			return err
		}
		if err := saveRegistry(reg, *path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated %s: %s = %s\n", *taskType, *field, *value)
		return nil

	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		path := fs.String("path", "configs/activity-registry.json", "Destination file")
		if err := fs.Parse(args); err != nil {
			return err
		}
		reg, err := registry.Default()
		if err != nil {
			return err
		}
		if err := saveRegistry(reg, *path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote embedded registry to %s\n", *path)
		return nil

	case "help":
		help(out)
		return nil

	default:
		help(out)
		return fmt.Errorf("unknown command %q", command)
	}
}

func listActivities(reg *registry.ActivityRegistry, out io.Writer) error {
	activities := append([]registry.Activity(nil), reg.Activities...)
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].TaskType < activities[j].TaskType
	})

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TASK TYPE\tCATEGORY\tSTATUS\tTIMEOUT\tRETRIES")
	for _, a := range activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", a.TaskType, a.Category, a.ImplementationStatus, a.Timeout, a.Retries)
	}
	return tw.Flush()
}

// validateRegistry runs the structural checks and compiles every input schema.
func validateRegistry(reg *registry.ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}
	if problems := reg.Check(); len(problems) > 0 {
		return fmt.Errorf("registry has %d problem(s): %v", len(problems), problems)
	}
	if _, err := validation.NewValidator(reg); err != nil {
		return fmt.Errorf("schema compilation failed: %w", err)
	}
	return nil
}

func updateActivity(reg *registry.ActivityRegistry, taskType, field, value string) error {
	activity, ok := reg.Activity(taskType)
	if !ok {
		return fmt.Errorf("activity with task type %s not found", taskType)
	}

	switch field {
	case "status":
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "description":
		activity.Description = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		activity.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return nil
}

// saveRegistry handles saving the registry to file
func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func help(out io.Writer) {
	fmt.Fprint(out, `
Usage: registry-updater <command> [flags]

Commands:
  list      List registered activities
  validate  Check the registry and compile its input schemas
  update    Update a field of an activity in a registry file
  export    Write the embedded registry to a file
  help      Show this help message

Examples:
  registry-updater list
  registry-updater validate -path configs/activity-registry.json
  registry-updater update -taskType calculate-business-valuation -field timeout -value 15s
  registry-updater export -path configs/activity-registry.json
`)
}
