// Command universeql is a small interactive shell for querying the unified
// type catalog and extension-method registry (spec §4.3, §4.4) — useful
// for checking what a CLR-binding manifest actually produced without
// running a full compile.
//
// Grounded on internal/repl/repl.go's REPL.Start: a peterh/liner line
// editor with a temp-dir history file, multi-line mode off (queries here
// are always single-line), a colon-command completer, and a read loop that
// dispatches colon-commands before falling through to a bare lookup.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/tsoniclang/tsonic-sub006/internal/binding"
	"github.com/tsoniclang/tsonic-sub006/internal/universe"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

var commands = []string{":help", ":quit", ":exit", ":lookup", ":supertypes", ":methods", ":overloads"}

// Shell wraps a catalog/registry pair with the liner read loop.
type Shell struct {
	catalog  *universe.UnifiedTypeCatalog
	registry *binding.Registry
}

func NewShell(catalog *universe.UnifiedTypeCatalog, registry *binding.Registry) *Shell {
	return &Shell{catalog: catalog, registry: registry}
}

func main() {
	catalog := bootstrapCatalog()
	registry := binding.NewRegistry(catalog)
	NewShell(catalog, registry).Start(os.Stdin, os.Stdout)
}

func (s *Shell) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".universeql_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("universeql"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	for {
		input, err := line.Prompt("universe> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if input == ":quit" || input == ":exit" || input == ":q" {
			break
		}

		s.dispatch(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (s *Shell) dispatch(input string, out io.Writer) {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":help":
		s.printHelp(out)
	case ":lookup":
		if len(fields) < 2 {
			fmt.Fprintf(out, "%s usage: :lookup <surfaceName>\n", red("Error"))
			return
		}
		s.lookup(fields[1], out)
	case ":supertypes":
		if len(fields) < 2 {
			fmt.Fprintf(out, "%s usage: :supertypes <surfaceName>\n", red("Error"))
			return
		}
		s.supertypes(fields[1], out)
	case ":methods":
		s.methods(out)
	case ":overloads":
		if len(fields) < 4 {
			fmt.Fprintf(out, "%s usage: :overloads <namespace> <methodName> <receiverSurfaceName>\n", red("Error"))
			return
		}
		s.overloads(fields[1], fields[2], fields[3], out)
	default:
		// A bare name is shorthand for :lookup.
		s.lookup(fields[0], out)
	}
}

func (s *Shell) printHelp(out io.Writer) {
	fmt.Fprintln(out, "  :lookup <name>                              show a type's entry")
	fmt.Fprintln(out, "  :supertypes <name>                          show BFS supertype tiers")
	fmt.Fprintln(out, "  :methods                                    list all indexed extension methods")
	fmt.Fprintln(out, "  :overloads <ns> <method> <receiver>         resolve an overload for a 0-arg call")
	fmt.Fprintln(out, "  :quit                                       exit")
}

func (s *Shell) lookup(name string, out io.Writer) {
	id, ok := s.catalog.BySurfaceName(name)
	if !ok {
		fmt.Fprintf(out, "%s unknown type %q\n", red("Error"), name)
		return
	}
	entry, _ := s.catalog.Lookup(id)
	fmt.Fprintf(out, "%s  %s  origin=%s\n", bold(entry.SurfaceName), cyan(entry.HostName), entry.Origin.String())
	for _, m := range s.catalog.Members(id) {
		kind := "field"
		if m.IsMethod {
			kind = "method"
		}
		if m.IsStatic {
			kind = "static " + kind
		}
		fmt.Fprintf(out, "  %s %s\n", dim(kind), m.Name)
	}
}

func (s *Shell) supertypes(name string, out io.Writer) {
	id, ok := s.catalog.BySurfaceName(name)
	if !ok {
		fmt.Fprintf(out, "%s unknown type %q\n", red("Error"), name)
		return
	}
	for depth, tier := range s.catalog.SupertypesBFS(id) {
		names := make([]string, 0, len(tier))
		for _, t := range tier {
			if e, ok := s.catalog.Lookup(t); ok {
				names = append(names, e.SurfaceName)
			}
		}
		sort.Strings(names)
		fmt.Fprintf(out, "  depth %d: %s\n", depth, strings.Join(names, ", "))
	}
}

func (s *Shell) methods(out io.Writer) {
	for _, m := range s.registry.AllMethods() {
		fmt.Fprintf(out, "  %s.%s.%s(%s) -> %s\n", m.Namespace, m.DeclaringType, m.Signature.Name,
			strings.Join(m.Signature.ParamTypes, ", "), m.Signature.ReturnType)
	}
}

func (s *Shell) overloads(namespace, method, receiver string, out io.Writer) {
	id, ok := s.catalog.BySurfaceName(receiver)
	if !ok {
		fmt.Fprintf(out, "%s unknown receiver type %q\n", red("Error"), receiver)
		return
	}
	res := s.registry.ResolveExtension(namespace, method, id, 0)
	if res.Resolved {
		fmt.Fprintf(out, "%s %s.%s(%s) -> %s\n", green("resolved"), res.Method.DeclaringType, res.Method.Signature.Name,
			strings.Join(res.Method.Signature.ParamTypes, ", "), res.Method.Signature.ReturnType)
		return
	}
	if res.Ambiguous {
		fmt.Fprintf(out, "%s %s\n", red("ambiguous"), res.Reason)
		return
	}
	fmt.Fprintf(out, "%s %s\n", red("unresolved"), res.Reason)
}

// bootstrapCatalog seeds a catalog with the handful of CLR primitives a
// query session is useless without; a real session loads bindings.json
// manifests through internal/manifest's Load before querying.
func bootstrapCatalog() *universe.UnifiedTypeCatalog {
	c := universe.New()
	obj := c.DeclareCLR("object", "System.Object", nil)
	c.DeclareCLR("string", "System.String", []universe.TypeID{obj})
	c.DeclareCLR("int", "System.Int32", []universe.TypeID{obj})
	c.DeclareCLR("double", "System.Double", []universe.TypeID{obj})
	c.DeclareCLR("bool", "System.Boolean", []universe.TypeID{obj})
	return c
}
