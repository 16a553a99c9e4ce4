/*
File   : saturday/cmd/saturday/main.go
Author : adapted from go-mix/main/main.go and
         original_source/src/main.rs for the saturday core

Package main is the interpreter's command-line entry point. It honors the
exact argument contract original_source/src/main.rs implements: no
arguments starts the REPL, one argument runs that file, and anything else
prints a usage line and exits 64. Exit codes throughout (0, 64, 65, 70)
match the reference implementation precisely, since scripts and test
harnesses built against this interpreter depend on them.

The argument parsing itself is wired through spf13/cobra rather than a bare
os.Args switch, the way opal-lang's CLIHarness wires its own subcommands -
but the exact usage string and exit codes the language specification
requires are enforced by this file's own code (the Args hook, main and
runFile) rather than left to cobra's default usage/error formatting, since
those defaults don't match the required wire format.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/akashmaji946/saturday/interp"
	"github.com/akashmaji946/saturday/parser"
	"github.com/akashmaji946/saturday/repl"
	"github.com/akashmaji946/saturday/resolve"
	"github.com/akashmaji946/saturday/token"
)

const (
	version = "v0.1.0"
	author  = "akashmaji946"
	license = "MIT"
	prompt  = "> "
	line    = "----------------------------------------------------------------"
	banner  = `
   ___      _                 _
  / __| __ | |_  _  _  _ _  __| | __ _  _  _
  \__ \/ _||  _|| || || '_|/ _' |/ _' || || |
  |___/\__| \__| \_,_||_|  \__,_|\__,_| \_, |
                                         |__/
`
)

var redColor = color.New(color.FgRed)

func main() {
	root := &cobra.Command{
		Use:                   "saturday [script]",
		DisableFlagsInUseLine: true,
		DisableFlagParsing:    true,
		SilenceUsage:          true,
		SilenceErrors:         true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("usage")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				startRepl()
				return nil
			}
			return runFile(args[0])
		},
	}
	root.SetArgs(os.Args[1:])

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Usage: %s [script]\n", os.Args[0])
		os.Exit(64)
	}
}

func startRepl() {
	session := repl.New(banner, version, author, line, license, prompt)
	session.Start(os.Stdout)
}

// runFile executes a single source file, exiting with the exit code the
// language specification assigns to each error category: 0 on success, 65
// for a compile-time error (lex, parse, or resolve), 70 for a runtime
// error, and 64 for a usage error (handled by the caller).
func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "System Error: %s\n", err)
		os.Exit(70)
	}

	p := parser.New(string(src))
	statements := p.Parse()
	if p.HasErrors() {
		for _, msg := range p.Errors() {
			redColor.Fprintf(os.Stderr, "%s\n", msg)
		}
		os.Exit(65)
	}

	it := interp.New()
	res := resolve.New(it)
	res.Resolve(statements)
	if res.HasErrors() {
		for _, msg := range res.Errors() {
			redColor.Fprintf(os.Stderr, "%s\n", msg)
		}
		os.Exit(65)
	}

	if err := it.Interpret(statements); err != nil {
		reportRuntimeError(err)
		os.Exit(70)
	}
	return nil
}

// reportRuntimeError formats a runtime error exactly as the language
// specification requires: `<message>\n[line L]` normally, or
// `[line L] Error at end: <message>` when the offending token is the
// synthetic end-of-file token.
func reportRuntimeError(err error) {
	rErr, ok := err.(*interp.RuntimeError)
	if !ok {
		fmt.Fprintf(os.Stderr, "System Error: %s\n", err)
		return
	}
	if rErr.Token.Is(token.Eof) {
		fmt.Fprintf(os.Stderr, "[line %d] Error at end: %s\n", rErr.Token.Line, rErr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n[line %d]\n", rErr.Message, rErr.Token.Line)
}
