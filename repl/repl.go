/*
File   : saturday/repl/repl.go
Author : adapted from go-mix/repl/repl.go for the saturday core

Package repl implements the interactive Read-Eval-Print Loop described in
the language's CLI contract: a `> ` prompt, line editing and history via
chzyer/readline, an empty line that ends the session, and a `@` line that
dumps the current environment chain for diagnostics (ported from
original_source/src/main.rs's `run` special-casing `source == "@"`). Unlike
go-mix's REPL, which creates one-shot evaluator state, the REPL here keeps
a single *interp.Interpreter alive across the whole session so declarations
and definitions persist from one line to the next, matching the reference
implementation's single long-lived Saturday session.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/akashmaji946/saturday/environment"
	"github.com/akashmaji946/saturday/interp"
	"github.com/akashmaji946/saturday/parser"
	"github.com/akashmaji946/saturday/resolve"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a single interactive session, configured the way go-mix's own
// REPL is: banner text, version/author/license strings, and the prompt
// shown to the user.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given banner configuration.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Press enter on an empty line to quit")
	cyanColor.Fprintf(writer, "%s\n", "Type '@' to inspect the current environment")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop until the user quits. An empty line ends
// the session, matching the reference implementation's run_prompt exactly
// rather than go-mix's own `.exit` convention.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	it := interp.New()
	it.SetWriter(writer)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			writer.Write([]byte("Good bye!\n"))
			return
		}
		rl.SaveHistory(line)

		if line == "@" {
			printEnvironment(writer, it.Environment())
			continue
		}

		r.executeLine(writer, line, it)
	}
}

// executeLine parses, resolves, and interprets a single line of input,
// reporting any error in red and letting the session continue regardless -
// a REPL's whole point is to survive the user's mistakes.
func (r *Repl) executeLine(writer io.Writer, line string, it *interp.Interpreter) {
	p := parser.New(line)
	statements := p.Parse()
	if p.HasErrors() {
		for _, msg := range p.Errors() {
			redColor.Fprintf(writer, "%s\n", msg)
		}
		return
	}

	res := resolve.New(it)
	res.Resolve(statements)
	if res.HasErrors() {
		for _, msg := range res.Errors() {
			redColor.Fprintf(writer, "%s\n", msg)
		}
		return
	}

	if err := it.Interpret(statements); err != nil {
		redColor.Fprintf(writer, "%s\n", err.Error())
	}
}

// printEnvironment renders the variable bindings visible from env outward
// to the global scope, the REPL's `@` diagnostic hook.
func printEnvironment(writer io.Writer, env *environment.Environment) {
	depth := 0
	for e := env; e != nil; e = e.Enclosing() {
		names := e.Names()
		cyanColor.Fprintf(writer, "scope %d: %s\n", depth, strings.Join(names, ", "))
		depth++
	}
}
