// Package cmd implements the styledump CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (resolve, properties).
package cmd

import (
	"fmt"
	"os"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "styledump",
	Short: "styledump - resolve styled documents from the command line",
	Long: `styledump loads a document description and a style sheet, runs the
cascade, and prints the computed values of every element.

Use "styledump <command> --help" for more information about a command.`,
	Usage: "styledump <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var commands []*Command

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands = append(commands, cmd)
}

func lookupCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]
	if len(args) == 0 {
		printHelp()
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp()
		return nil
	case "-v", "--version", "version":
		fmt.Printf("styledump version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmd := lookupCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(cmd)
			return nil
		}
	}
	return cmd.Run(cmdArgs)
}

func printHelp() {
	fmt.Println(rootCmd.Long)
	fmt.Println()
	fmt.Printf("Usage:\n  %s\n\nCommands:\n", rootCmd.Usage)
	for _, cmd := range commands {
		fmt.Printf("  %-12s %s\n", cmd.Name, cmd.Short)
	}
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Printf("Usage:\n  %s\n", cmd.Usage)
}
