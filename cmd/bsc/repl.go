package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/checker"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/report"
	"github.com/ymzk/bluescript/syntax"
)

const (
	historyFile = ".bsc_history"
	promptMain  = ">> "
	promptCont  = ".. "
	replPath    = "<repl>"
)

// execReplCommand runs the interactive checking session: each submitted chunk
// is parsed and type-checked against a persistent global scope, and the type
// of its final expression statement is echoed.
func execReplCommand() int {
	fmt.Printf("BlueScript checker %s\nCtrl+D exits. Type :quit to exit.\n", Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	global := names.NewGlobalTable(nil)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if trimmed == ":quit" {
				return 0
			}

			fmt.Println("unknown command. Type :quit to exit.")
			continue
		}

		prog, err := syntax.Parse(code)
		if err != nil {
			displayError(replPath, err, "verbose")
			continue
		}

		info, err := checker.TypeCheck(prog, global, nil)
		if err != nil {
			displayError(replPath, err, "verbose")
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if t, ok := lastExprType(prog, info); ok {
			report.InfoColorFG.Println(t.Repr())
		}
	}
}

// lastExprType returns the checked type of the chunk's final expression
// statement, if it has one.
func lastExprType(prog *ast.Program, info *checker.TypeTable) (result interface{ Repr() string }, ok bool) {
	if len(prog.Body) == 0 {
		return nil, false
	}

	es, ok := prog.Body[len(prog.Body)-1].(*ast.ExprStmt)
	if !ok {
		return nil, false
	}

	t, ok := info.GetStaticType(es.Expr)
	return t, ok
}

// readByParseProbe collects input lines until they parse as a complete chunk:
// input that ends mid-production keeps the prompt open on a continuation
// line.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}

		_, perr := syntax.Parse(src)
		if perr == nil {
			return src, true
		}
		if syntax.IsIncomplete(perr) {
			continue
		}

		return src, true
	}
}
