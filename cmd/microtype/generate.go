package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/syssam/microtype/compiler/gen"
	"github.com/syssam/microtype/compiler/gen/golang"
)

var force bool

var generateCmd = &cobra.Command{
	Use:   "generate [dir]",
	Short: "Generate wrapper types for a project directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), projectDir(args))
	},
}

func init() {
	generateCmd.Flags().BoolVar(&force, "force", false, "regenerate inputs the snapshot manifest reports unchanged")
}

// runGenerate executes the full pipeline for one project directory.
// Watch mode calls it again on every change.
func runGenerate(ctx context.Context, dir string) error {
	logger := newLogger()
	cfg, inputs, err := loadProject(dir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		logger.Warn("no declaration files found", "dir", dir, "globs", cfg.Inputs)
		return nil
	}
	opts := append(cfg.Options(),
		gen.WithTarget(resolveTarget(dir, cfg.Target)),
		gen.WithLogger(logger),
		gen.WithForce(force),
	)
	gcfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	if err := golang.Generate(ctx, gcfg, inputs); err != nil {
		return reportDiagnostics(err)
	}
	return nil
}
