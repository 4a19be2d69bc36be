// Command tsonic is the external CLI wrapper around the compiler core
// (spec §6 — out of core scope, a collaborator of internal/pipeline). It
// has no job beyond: collect a pre-built module set, call
// pipeline.Compile, and print diagnostics and emitted host source.
//
// Grounded on cmd/ailang/main.go's flag/color texture (version/help
// printing, fatih/color severity coloring) upgraded to spf13/cobra because
// this CLI has real subcommands (compile, inspect) where ailang's had one
// dispatch switch over flag.Arg(0).
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsoniclang/tsonic-sub006/internal/diag"
	"github.com/tsoniclang/tsonic-sub006/internal/hostast"
	"github.com/tsoniclang/tsonic-sub006/internal/ir"
	"github.com/tsoniclang/tsonic-sub006/internal/pipeline"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

var (
	// Version info, set by ldflags during build.
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// NamingPolicy is the optional config file accepted by --policy (spec §6):
// a naming-translation layer the external front end and this CLI agree on,
// kept out of the core because the core only ever sees ir.Module values
// that already carry resolved host names.
type NamingPolicy struct {
	PascalCaseMembers bool              `yaml:"pascalCaseMembers"`
	Namespace         string            `yaml:"namespace"`
	Renames           map[string]string `yaml:"renames"`
}

func loadPolicy(path string) (NamingPolicy, error) {
	var p NamingPolicy
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing naming policy %s: %w", path, err)
	}
	return p, nil
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tsonic",
		Short: "Lower and emit closed IR modules through the fixed pass pipeline",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
	}
	root.AddCommand(newCompileCmd())
	root.AddCommand(newInspectCmd())
	return root
}

func newCompileCmd() *cobra.Command {
	var (
		policyPath string
		workers    int
		outDir     string
	)
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Run the validate/lower/emit pipeline over a fixture module set and print diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := loadPolicy(policyPath)
			if err != nil {
				return err
			}
			if policy.Namespace != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s using namespace %s from policy file\n", gray("note:"), policy.Namespace)
			}

			modules := demoModules()
			catalog := universe.New()
			result := pipeline.Compile(modules, pipeline.Config{
				Catalog: catalog,
				Workers: workers,
			})

			printDiagnostics(cmd.OutOrStdout(), result.Diags)

			if result.Diags.HasErrors() {
				return fmt.Errorf("compilation failed")
			}

			for path, f := range result.Files {
				rendered := hostast.Print(f)
				if outDir == "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n", bold("//"), path, rendered)
					continue
				}
				outPath := outDir + "/" + path + ".cs"
				if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", cyan("wrote"), path, outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&policyPath, "policy", "", "optional naming-policy YAML file (spec §6)")
	cmd.Flags().IntVar(&workers, "workers", 1, "worker pool size for parallel-eligible passes")
	cmd.Flags().StringVar(&outDir, "out", "", "directory to write emitted host source into (stdout if empty)")
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the supertype chain of a type in the unified catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := universe.New()
			id, ok := catalog.BySurfaceName(args[0])
			if !ok {
				return fmt.Errorf("unknown surface type %q", args[0])
			}
			entry, _ := catalog.Lookup(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", bold(entry.SurfaceName), entry.HostName)
			for depth, tier := range catalog.SupertypesBFS(id) {
				names := make([]string, 0, len(tier))
				for _, t := range tier {
					if e, ok := catalog.Lookup(t); ok {
						names = append(names, e.SurfaceName)
					}
				}
				sort.Strings(names)
				fmt.Fprintf(cmd.OutOrStdout(), "  depth %d: %v\n", depth, names)
			}
			return nil
		},
	}
	return cmd
}

func printDiagnostics(w io.Writer, c *diag.Collector) {
	for _, d := range c.Diagnostics() {
		var paint func(a ...interface{}) string
		switch d.Severity {
		case diag.Fatal, diag.Error:
			paint = red
		case diag.Warning:
			paint = yellow
		default:
			paint = cyan
		}
		fmt.Fprintf(w, "%s %s: %s (%s:%d:%d)\n", paint(d.Severity.String()), d.Code, d.Message, d.Pos.File, d.Pos.Line, d.Pos.Column)
	}
}

// demoModules stands in for the front end's IR-builder output (spec §6
// Non-goals: this core never parses source) — a single module whose
// top-level statement exercises the pipeline end-to-end for ad-hoc
// `tsonic compile` invocations.
func demoModules() []*ir.Module {
	return []*ir.Module{
		{
			Path:          "main.tsn",
			ContainerName: "Program",
			Body: []ir.Statement{
				&ir.FuncDecl{
					Name:       "main",
					ReturnType: ir.VoidType{},
					Body: []ir.Statement{
						&ir.ExprStatement{Expr: &ir.Literal{Kind: ir.LitString, Value: "hello"}},
					},
				},
			},
		},
	}
}
