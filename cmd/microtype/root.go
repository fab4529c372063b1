package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/syssam/microtype/compiler/gen"
	"github.com/syssam/microtype/compiler/load"
)

var (
	// verbose enables debug logging.
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "microtype",
		Short: "Generate distinct wrapper types from declaration files",
		Long: `microtype turns compact declaration files into generated Go wrapper
types. A declaration names an inner type, one or more wrapper names,
and modifier annotations steering the generated capabilities:

	#[string] string { Email, Username }
	#[secret] string { Password }
	#[int] #[column(sql_type = BigInt)] int64 { Quantity }

Projects configure the output package, target directory, input globs,
and enabled features in a .microtype.yaml file next to their schemas.`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command through the fang runner.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// version resolves the module version from the build info.
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the microtype version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "microtype", version())
	},
}

// newLogger builds the CLI logger honoring the verbose flag.
func newLogger() *log.Logger {
	l := log.New(os.Stderr)
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// projectDir resolves the optional positional directory argument.
func projectDir(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return "."
}

// loadProject reads the project config and its declaration inputs.
func loadProject(dir string) (*load.Config, []gen.Input, error) {
	cfg, err := load.FromDir(dir)
	if err != nil {
		return nil, nil, err
	}
	paths, err := load.Discover(dir, cfg.Inputs)
	if err != nil {
		return nil, nil, err
	}
	inputs, err := load.ReadInputs(paths)
	if err != nil {
		return nil, nil, err
	}
	return cfg, load.GenInputs(inputs), nil
}

// resolveTarget anchors a relative target at the project directory.
func resolveTarget(dir, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(dir, target)
}

// reportDiagnostics prints located diagnostics one per line in
// path:line:col form and returns a short summarizing error. Other
// errors pass through unchanged.
func reportDiagnostics(err error) error {
	de, ok := gen.AsDiagnostics(err)
	if !ok {
		return err
	}
	for _, d := range de.Diags {
		switch {
		case d.Path != "" && d.Pos.IsValid():
			fmt.Fprintf(os.Stderr, "%s:%s: %s\n", d.Path, d.Pos, d.Msg)
		case d.Path != "":
			fmt.Fprintf(os.Stderr, "%s: %s\n", d.Path, d.Msg)
		default:
			fmt.Fprintln(os.Stderr, d.Msg)
		}
	}
	switch n := len(de.Diags); n {
	case 1:
		return fmt.Errorf("1 diagnostic")
	default:
		return fmt.Errorf("%d diagnostics", n)
	}
}
