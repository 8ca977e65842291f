// Package app implements the shabdsetu subcommands.
package app

import (
	"fmt"
	"os"
	"strings"
)

type command struct {
	name    string
	summary string
	run     func(args []string) int
}

var commands = []command{
	{name: "serve", summary: "Start the translation HTTP API", run: runServe},
	{name: "translate", summary: "Translate text between English and Marathi", run: runTranslate},
	{name: "detect", summary: "Report the detected language of text", run: runDetect},
	{name: "migrate", summary: "Create the persistent translation store schema", run: runMigrate},
}

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	name := strings.ToLower(strings.TrimSpace(args[0]))
	switch name {
	case "help", "--help", "-h":
		printUsage()
		return 0
	}
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd.run(args[1:])
		}
	}

	fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
	printUsage()
	return 2
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "shabdsetu: English <-> Marathi translation service")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  shabdsetu <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"shabdsetu <command> -h\" for command-specific flags.")
}
