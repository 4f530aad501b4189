// Command bsc is the BlueScript static checker CLI: it parses a source file
// or project, runs the two-pass type checker, and reports diagnostics.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/ymzk/bluescript/checker"
	"github.com/ymzk/bluescript/modules"
	"github.com/ymzk/bluescript/names"
	"github.com/ymzk/bluescript/report"
	"github.com/ymzk/bluescript/syntax"
)

// Version is the current bsc version.
const Version = "0.3.0"

func main() {
	// Set up the argument parser and all its extended commands and arguments.
	cli := olive.NewCLI("bsc", "bsc is the BlueScript static checker", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the checker log level", false, []string{"silent", "error", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "type-check a source file or project", true)
	checkCmd.AddPrimaryArg("path", "the path to the file or project directory to check", true)

	cli.AddSubcommand("repl", "start an interactive checking session", false)
	cli.AddSubcommand("version", "print the bsc version", false)

	// Run the argument parser.
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.DisplayErrorMessage("Error", err)
		os.Exit(1)
	}

	// Process the inputed command line.
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		path, _ := subResult.PrimaryArg()
		os.Exit(execCheckCommand(path, result.Arguments["loglevel"].(string)))
	case "repl":
		os.Exit(execReplCommand())
	case "version":
		report.DisplayInfoMessage("bsc version", Version)
	}
}

// execCheckCommand executes the check subcommand and handles all its errors.
func execCheckCommand(path, loglevel string) int {
	info, err := os.Stat(path)
	if err != nil {
		report.DisplayErrorMessage("Error", err)
		return 1
	}

	var srcPath string
	var importer checker.Importer
	if info.IsDir() {
		manifest, err := modules.LoadManifest(path)
		if err != nil {
			report.DisplayErrorMessage("Error", err)
			return 1
		}

		srcPath = filepath.Join(manifest.Root, manifest.Main)
		importer = modules.NewResolver(manifest).Import
	} else {
		srcPath = path

		// A manifest beside the file supplies the import mapping.
		if manifest, err := modules.LoadManifest(filepath.Dir(path)); err == nil {
			importer = modules.NewResolver(manifest).Import
		}
	}

	src, err := os.ReadFile(srcPath)
	if err != nil {
		report.DisplayErrorMessage("Error", err)
		return 1
	}

	prog, err := syntax.Parse(string(src))
	if err != nil {
		displayError(srcPath, err, loglevel)
		return 1
	}

	global := names.NewGlobalTable(nil)
	if _, err := checker.TypeCheck(prog, global, importer); err != nil {
		displayError(srcPath, err, loglevel)
		return 1
	}

	if loglevel == "verbose" {
		report.DisplayInfoMessage("OK", fmt.Sprintf("%s type-checks", srcPath))
	}

	return 0
}

// displayError renders a parse or check failure.
func displayError(srcPath string, err error, loglevel string) {
	if loglevel == "silent" {
		return
	}

	switch v := err.(type) {
	case *report.ErrorLog:
		report.DisplayErrorLog(srcPath, v)
	case *report.Diagnostic:
		report.DisplayDiagnostic(srcPath, v)
	case *syntax.IncompleteError:
		report.DisplayDiagnostic(srcPath, v.Diag)
	default:
		report.DisplayErrorMessage("Error", err)
	}
}
