// cmd/advisor/root.go
package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"business-advisor/internal/common/config"
	"business-advisor/internal/common/logger"
	"business-advisor/internal/valuation"
)

var (
	headingText = color.New(color.FgCyan, color.Bold).SprintFunc()
	valueText   = color.New(color.FgGreen, color.Bold).SprintFunc()
	mutedText   = color.New(color.FgHiBlack).SprintFunc()
	warnText    = color.New(color.FgYellow).SprintFunc()
	errorText   = color.New(color.FgRed).SprintFunc()
)

// cli carries the flags shared by every subcommand.
type cli struct {
	configPath string
	noColor    bool
	verbose    bool
	jsonOutput bool

	log logger.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{log: logger.NewNoOpLogger()}

	root := &cobra.Command{
		Use:           "advisor",
		Short:         "Business valuation and exit readiness advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.noColor {
				color.NoColor = true
			}
			if c.verbose {
				c.log = logger.NewStructured("debug", "console")
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file with industry multiplier overrides")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(c.newValuateCommand(), c.newDiagnoseCommand(), c.newMarketCommand())
	return root
}

// multipliers returns the default table, with overrides when a config file is given.
func (c *cli) multipliers() (valuation.MultiplierTable, error) {
	if c.configPath == "" {
		return valuation.DefaultMultipliers(), nil
	}
	cfg, err := config.LoadFromFile(c.configPath)
	if err != nil {
		return nil, err
	}
	c.log.Debug("loaded multiplier overrides", map[string]interface{}{
		"path":      c.configPath,
		"overrides": len(cfg.Valuation.IndustryMultipliers),
	})
	return cfg.MultiplierTable()
}
