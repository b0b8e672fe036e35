package deadbasic

import (
	"fmt"
	"strings"
)

// execSimple runs a declaration, assignment or built-in command and
// returns without touching the instruction pointer.
func (ip *Interpreter) execSimple(st *Statement) error {
	switch st.Kind {
	case StmtDeclaration:
		literal := strings.Join(st.Args, " ")
		v, err := ParseLiteral(st.DeclType, literal)
		if err != nil {
			return err
		}
		return ip.store.Declare(st.Name, st.DeclType, v)

	case StmtAssignment:
		v, err := EvalExpression(ip.store, st.Args)
		if err != nil {
			return err
		}
		return ip.store.Assign(st.Name, v)

	case StmtCommand:
		switch st.Keyword {
		case "printtext":
			return ip.cmdPrintText(st.Args)
		case "showvars":
			return ip.cmdShowVars()
		case "openfile":
			return ip.cmdOpenFile(st.Args)
		case "add":
			return ip.cmdAdd(st.Args)
		case "input":
			return ip.cmdInput(st.Args)
		case "help":
			return ip.cmdHelp()
		}
	}
	return syntaxErr("UNKNOWN_COMMAND", ErrUnknownCommand).WithDetail(st.Keyword)
}

// cmdPrintText prints its arguments space-joined: declared variables
// resolve to their value, everything else prints as literal text.
func (ip *Interpreter) cmdPrintText(args []string) error {
	if len(args) == 0 {
		return syntaxErr("MISSING_ARGUMENT", ErrMissingArgument).WithDetail("printtext needs text or var names")
	}
	parts := make([]string, 0, len(args))
	for _, tok := range args {
		if v, ok := ip.store.Get(tok); ok {
			parts = append(parts, v.String())
		} else {
			parts = append(parts, unquote(tok))
		}
	}
	fmt.Fprintln(ip.out, strings.Join(parts, " "))
	return nil
}

// cmdShowVars lists every variable in declaration order.
func (ip *Interpreter) cmdShowVars() error {
	if ip.store.Len() == 0 {
		fmt.Fprintln(ip.out, "(no vars)")
		return nil
	}
	ip.store.All(func(v Variable) bool {
		fmt.Fprintf(ip.out, "%s (%s) = %s\n", v.Name, v.Type, v.Value)
		return true
	})
	return nil
}

// cmdOpenFile runs another .ba file as a synchronous nested run with
// its own variable store. The caller's store is never touched.
func (ip *Interpreter) cmdOpenFile(args []string) error {
	if len(args) == 0 {
		return syntaxErr("MISSING_ARGUMENT", ErrMissingArgument).WithDetail("openfile needs a filename")
	}
	child := New(ip.out, ip.in)
	return child.RunFile(unquote(args[0]))
}

// cmdAdd prints the numeric sum of two resolved operands without
// storing it anywhere.
func (ip *Interpreter) cmdAdd(args []string) error {
	if len(args) != 2 {
		return syntaxErr("MISSING_ARGUMENT", ErrMissingArgument).WithDetail("add needs exactly 2 numbers")
	}
	a, err := ResolveToken(ip.store, args[0])
	if err != nil {
		return err
	}
	b, err := ResolveToken(ip.store, args[1])
	if err != nil {
		return err
	}
	sum, err := Add(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintln(ip.out, sum.String())
	return nil
}

// cmdInput prompts for a typed value and stores it, declaring the
// variable if needed.
func (ip *Interpreter) cmdInput(args []string) error {
	if len(args) != 2 {
		return syntaxErr("MISSING_ARGUMENT", ErrMissingArgument).WithDetail("input needs: <type> <varname>")
	}
	declType, ok := TypeFromKeyword(strings.ToLower(args[0]))
	if !ok {
		return syntaxErr("UNKNOWN_TYPE", ErrFormat).WithDetail(args[0])
	}
	name := args[1]
	fmt.Fprintf(ip.out, "Enter %s %s: ", declType, name)
	raw, err := ip.in.ReadString('\n')
	if err != nil && raw == "" {
		return runtimeErr("INPUT_FAILED", ErrFormat).WithDetail(err.Error())
	}
	raw = strings.TrimRight(raw, "\r\n")
	v, err := ParseLiteral(declType, raw)
	if err != nil {
		return err
	}
	return ip.store.Put(name, declType, v)
}

// cmdHelp prints the version banner and command reference.
func (ip *Interpreter) cmdHelp() error {
	fmt.Fprintf(ip.out, "Welcome to DeadBasic version %s\n", Version)
	fmt.Fprintln(ip.out, "Declarations: int x 5 | long big 999999 | double pi 3.14 | str name \"Ryan\"")
	fmt.Fprintln(ip.out, "Commands:")
	fmt.Fprintln(ip.out, "  printtext ...   prints literal text and variable values")
	fmt.Fprintln(ip.out, "  showvars        lists every variable as name (type) = value")
	fmt.Fprintln(ip.out, "  openfile f.ba   runs another .ba file with its own variables")
	fmt.Fprintln(ip.out, "  add a b         prints the sum of two numbers")
	fmt.Fprintln(ip.out, "  input t name    reads a typed value from the keyboard")
	fmt.Fprintln(ip.out, "  help            shows this text")
	fmt.Fprintln(ip.out, "Flow: if/else/endif, while/endwhile (files only), try/catch [errVar]/endtry")
	fmt.Fprintln(ip.out, "Conditions: <lhs> <op> <rhs> with = != < > <= >=, or: not <value>")
	fmt.Fprintln(ip.out, "Comments start with # or ``")
	return nil
}
