package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"uninter/interpreter-go/pkg/ast"
	"uninter/interpreter-go/pkg/interpreter"
	"uninter/interpreter-go/pkg/runtime"
)

const (
	historyFile = ".uninter_history"
	promptMain  = "==> "
)

var replBanner = fmt.Sprintf("%s REPL\nOne JSON expression per line. Ctrl+D or :quit exits.", cliToolVersion)

// runRepl evaluates one JSON-encoded expression per line against a
// persistent top-level environment, so Let bindings survive across lines.
func runRepl(_ []string, stdout, stderr io.Writer) int {
	fmt.Fprintln(stdout, replBanner)

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

	interp := interpreter.New(interpreter.WithStdout(stdout))
	env := interp.GlobalEnvironment()

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			// io.EOF on Ctrl+D.
			fmt.Fprintln(stdout)
			return 0
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" {
			return 0
		}
		ln.AppendHistory(line)

		node, err := ast.DecodeExpression([]byte(line))
		if err != nil {
			reportError(stderr, err)
			continue
		}
		value, err := interp.Evaluate(node, env)
		if err != nil {
			reportRuntimeError(stderr, err)
			continue
		}
		color.New(color.FgCyan).Fprintln(stdout, runtime.Display(value))
	}
}
