// Package main implements the featstate CLI tool.
//
// featstate validates and plans declarative feature-store metadata:
//
//	featstate validate --defs resources.yaml   # Construct and register resources
//	featstate plan --defs resources.yaml       # Print the canonical registration plan
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/featstate/featstate/pkg/config"
	"github.com/featstate/featstate/pkg/defs"
	"github.com/featstate/featstate/pkg/plan"
	"github.com/featstate/featstate/pkg/registry"
)

// Version is set at build time.
var version = "dev"

// CLI constants for flag defaults.
const (
	flagDefs = "defs"
	descDefs = "Definitions file (YAML)"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "featstate",
		Short: "Feature-store metadata CLI",
		Long: `featstate validates declarative feature-store resource definitions
and produces the canonical, dependency-ordered registration plan a
metadata backend would apply.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newValidateCmd(),
		newPlanCmd(),
	)

	return cmd
}

func newValidateCmd() *cobra.Command {
	var defsPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Construct and register all defined resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(defsPath)
			if err != nil {
				return err
			}

			state, err := loadState(cfg.DefsPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d resources\n", state.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&defsPath, flagDefs, "", descDefs)
	return cmd
}

func newPlanCmd() *cobra.Command {
	var defsPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the canonical registration plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(defsPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			state, err := loadState(cfg.DefsPath)
			if err != nil {
				return err
			}

			p, err := plan.NewPlanner(logger, cfg.Strict).Plan(state)
			if err != nil {
				return err
			}

			for _, step := range p.Steps {
				fmt.Fprintln(cmd.OutOrStdout(), step.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&defsPath, flagDefs, "", descDefs)
	return cmd
}

// setup loads configuration, applies the flag override, and builds the
// logger.
func setup(defsPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if defsPath != "" {
		cfg.DefsPath = defsPath
	}
	if cfg.DefsPath == "" {
		return nil, nil, fmt.Errorf("a definitions file is required (--%s or %s)",
			flagDefs, config.EnvDefsPath)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newLogger builds a development logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = parsed
	return zapCfg.Build()
}

// loadState decodes the definitions file and populates a registry.
func loadState(path string) (*registry.State, error) {
	d, err := defs.Load(path)
	if err != nil {
		return nil, err
	}
	state := registry.New()
	if err := d.Populate(state); err != nil {
		return nil, err
	}
	return state, nil
}
