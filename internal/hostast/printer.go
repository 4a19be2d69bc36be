package hostast

import (
	"fmt"
	"strings"
)

// Print renders f as compilable host-language source: 2-space indent,
// members and statements in emission order (the order they appear in
// their containing slice — the printer never reorders anything), and
// stable text for an identical tree (spec §6's pretty-printer contract).
func Print(f *File) string {
	var b strings.Builder
	for _, u := range f.Usings {
		fmt.Fprintf(&b, "using %s;\n", u)
	}
	if len(f.Usings) > 0 {
		b.WriteByte('\n')
	}
	if f.Namespace != "" {
		fmt.Fprintf(&b, "namespace %s\n{\n", f.Namespace)
		for _, td := range f.Types {
			printType(&b, td, 1)
		}
		b.WriteString("}\n")
	} else {
		for _, td := range f.Types {
			printType(&b, td, 0)
		}
	}
	return b.String()
}

// PrintStmt renders a single statement at zero indentation, trimmed of
// its trailing newline. Used by callers (e.g. the emitter's lambda-body
// rendering) that need statement text outside of a full File tree.
func PrintStmt(s Stmt) string {
	var b strings.Builder
	printStmt(&b, s, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func printType(b *strings.Builder, td *TypeDecl, depth int) {
	for _, a := range td.Attributes {
		indent(b, depth)
		fmt.Fprintf(b, "[%s]\n", a)
	}
	indent(b, depth)
	if len(td.Modifiers) > 0 {
		fmt.Fprintf(b, "%s %s %s", strings.Join(td.Modifiers, " "), td.Kind, td.Name)
	} else {
		fmt.Fprintf(b, "%s %s", td.Kind, td.Name)
	}
	if len(td.TypeParameters) > 0 {
		fmt.Fprintf(b, "<%s>", strings.Join(td.TypeParameters, ", "))
	}
	if len(td.BaseList) > 0 {
		fmt.Fprintf(b, " : %s", strings.Join(td.BaseList, ", "))
	}
	b.WriteString("\n")
	indent(b, depth)
	b.WriteString("{\n")
	for _, m := range td.Members {
		printMember(b, m, depth+1)
	}
	indent(b, depth)
	b.WriteString("}\n")
}

func printMember(b *strings.Builder, m Member, depth int) {
	switch n := m.(type) {
	case *FieldMember:
		for _, a := range n.Attributes {
			indent(b, depth)
			fmt.Fprintf(b, "[%s]\n", a)
		}
		indent(b, depth)
		prefix := modPrefix(n.Modifiers)
		if n.Init != "" {
			fmt.Fprintf(b, "%s%s %s = %s;\n", prefix, n.Type, n.Name, n.Init)
		} else {
			fmt.Fprintf(b, "%s%s %s;\n", prefix, n.Type, n.Name)
		}
	case *PropertyMember:
		for _, a := range n.Attributes {
			indent(b, depth)
			fmt.Fprintf(b, "[%s]\n", a)
		}
		indent(b, depth)
		accessors := ""
		if n.AutoGet {
			accessors += "get; "
		}
		if n.AutoSet {
			accessors += "set; "
		}
		fmt.Fprintf(b, "%s%s %s { %s}\n", modPrefix(n.Modifiers), n.Type, n.Name, accessors)
	case *MethodMember:
		for _, a := range n.Attributes {
			indent(b, depth)
			fmt.Fprintf(b, "[%s]\n", a)
		}
		indent(b, depth)
		sig := fmt.Sprintf("%s%s %s", modPrefix(n.Modifiers), n.ReturnType, n.Name)
		if len(n.TypeParameters) > 0 {
			sig += "<" + strings.Join(n.TypeParameters, ", ") + ">"
		}
		sig += "(" + paramList(n.Parameters) + ")"
		if n.Body == nil {
			fmt.Fprintf(b, "%s;\n", sig)
			return
		}
		b.WriteString(sig)
		b.WriteString("\n")
		indent(b, depth)
		b.WriteString("{\n")
		for _, s := range n.Body {
			printStmt(b, s, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *ConstructorMember:
		indent(b, depth)
		sig := fmt.Sprintf("%s%s(%s)", modPrefix(n.Modifiers), n.Name, paramList(n.Parameters))
		b.WriteString(sig)
		b.WriteString("\n")
		indent(b, depth)
		b.WriteString("{\n")
		for _, s := range n.Body {
			printStmt(b, s, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	}
}

func modPrefix(mods []string) string {
	if len(mods) == 0 {
		return ""
	}
	return strings.Join(mods, " ") + " "
}

func paramList(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		s := ""
		if p.Modifier != "" {
			s += p.Modifier + " "
		}
		s += p.Type + " " + p.Name
		if p.Default != "" {
			s += " = " + string(p.Default)
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func printStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch n := s.(type) {
	case *ExprStmt:
		fmt.Fprintf(b, "%s;\n", n.Expr)
	case *VarStmt:
		fmt.Fprintf(b, "%s %s = %s;\n", n.Type, n.Name, n.Init)
	case *ReturnStmt:
		if n.Value == "" {
			b.WriteString("return;\n")
		} else {
			fmt.Fprintf(b, "return %s;\n", n.Value)
		}
	case *ThrowStmt:
		fmt.Fprintf(b, "throw %s;\n", n.Value)
	case *YieldReturnStmt:
		fmt.Fprintf(b, "yield return %s;\n", n.Value)
	case *YieldBreakStmt:
		b.WriteString("yield break;\n")
	case *BreakStmt:
		if n.Label != "" {
			fmt.Fprintf(b, "goto %s; // break\n", n.Label)
		} else {
			b.WriteString("break;\n")
		}
	case *ContinueStmt:
		if n.Label != "" {
			fmt.Fprintf(b, "goto %s; // continue\n", n.Label)
		} else {
			b.WriteString("continue;\n")
		}
	case *IfStmt:
		fmt.Fprintf(b, "if (%s)\n", n.Cond)
		indent(b, depth)
		b.WriteString("{\n")
		for _, st := range n.Then {
			printStmt(b, st, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
		if n.Else != nil {
			indent(b, depth)
			b.WriteString("else\n")
			indent(b, depth)
			b.WriteString("{\n")
			for _, st := range n.Else {
				printStmt(b, st, depth+1)
			}
			indent(b, depth)
			b.WriteString("}\n")
		}
	case *WhileStmt:
		fmt.Fprintf(b, "while (%s)\n", n.Cond)
		indent(b, depth)
		b.WriteString("{\n")
		for _, st := range n.Body {
			printStmt(b, st, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *ForEachStmt:
		await := ""
		if n.IsAwait {
			await = "await "
		}
		fmt.Fprintf(b, "%sforeach (%s %s in %s)\n", await, n.ElementType, n.Binding, n.Iterable)
		indent(b, depth)
		b.WriteString("{\n")
		for _, st := range n.Body {
			printStmt(b, st, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *BlockStmt:
		b.WriteString("{\n")
		for _, st := range n.Body {
			printStmt(b, st, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
	case *TryStmt:
		b.WriteString("try\n")
		indent(b, depth)
		b.WriteString("{\n")
		for _, st := range n.Body {
			printStmt(b, st, depth+1)
		}
		indent(b, depth)
		b.WriteString("}\n")
		if n.CatchBody != nil {
			indent(b, depth)
			if n.CatchType != "" && n.CatchBind != "" {
				fmt.Fprintf(b, "catch (%s %s)\n", n.CatchType, n.CatchBind)
			} else if n.CatchType != "" {
				fmt.Fprintf(b, "catch (%s)\n", n.CatchType)
			} else {
				b.WriteString("catch\n")
			}
			indent(b, depth)
			b.WriteString("{\n")
			for _, st := range n.CatchBody {
				printStmt(b, st, depth+1)
			}
			indent(b, depth)
			b.WriteString("}\n")
		}
		if n.FinallyBody != nil {
			indent(b, depth)
			b.WriteString("finally\n")
			indent(b, depth)
			b.WriteString("{\n")
			for _, st := range n.FinallyBody {
				printStmt(b, st, depth+1)
			}
			indent(b, depth)
			b.WriteString("}\n")
		}
	case *RawStmt:
		b.WriteString(n.Text)
		b.WriteString("\n")
	}
}
