package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/microtype/compiler/gen"
	"github.com/syssam/microtype/compiler/gen/golang"
)

var debugDump bool

var describeCmd = &cobra.Command{
	Use:   "describe [dir]",
	Short: "Show the capability plan of every declared wrapper",
	Long: `describe runs the pipeline up to capability dispatch and prints the
plan of every declared wrapper without writing any files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDescribe(cmd, projectDir(args))
	},
}

func init() {
	describeCmd.Flags().BoolVar(&debugDump, "debug", false, "dump the planned model")
}

func runDescribe(cmd *cobra.Command, dir string) error {
	cfg, inputs, err := loadProject(dir)
	if err != nil {
		return err
	}
	opts := append(cfg.Options(),
		gen.WithTarget(resolveTarget(dir, cfg.Target)),
		gen.WithRenderer(golang.New()),
	)
	gcfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	g, err := gen.NewGenerator(gcfg)
	if err != nil {
		return err
	}
	units, diags := g.Plan(inputs)
	if len(diags) > 0 {
		return reportDiagnostics(gen.NewDiagnosticsError(diags...))
	}
	if debugDump {
		spew.Fdump(cmd.OutOrStdout(), units)
		return nil
	}

	title := cases.Title(language.English)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		title.String("source"), title.String("name"), title.String("inner"),
		title.String("kind"), title.String("groups"))
	for _, u := range units {
		for _, p := range u.Specs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				u.Source, p.Spec.Name, p.Spec.Inner.String(),
				p.Attrs.Kind.Kind, strings.Join(p.Plan.Groups(), ","))
		}
	}
	return w.Flush()
}
