package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/seedwire/netseed/cmd"
	"github.com/seedwire/netseed/internal/brand"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "apply":
		applyFlags := flag.NewFlagSet("apply", flag.ExitOnError)
		configFile := applyFlags.String("config", "", "Settings file (default "+brand.GetConfigPath()+")")
		docFile := applyFlags.String("file", "", "Read the network-config from a file instead of the seed volume")
		dryRun := applyFlags.Bool("dry-run", false, "Print the operations without applying them")
		applyFlags.BoolVar(dryRun, "n", false, "Dry run (short)")
		verify := applyFlags.Bool("verify", false, "Probe gateways and DNS after applying")
		applyFlags.Parse(os.Args[2:])

		if err := cmd.RunApply(*configFile, *docFile, *dryRun, *verify); err != nil {
			fmt.Fprintf(os.Stderr, "Apply failed: %v\n", err)
			os.Exit(1)
		}

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("verbose", false, "Also print the operations an apply would perform")
		checkFlags.BoolVar(verbose, "v", false, "Verbose output (short)")
		checkFlags.Parse(os.Args[2:])

		docFile := ""
		if len(checkFlags.Args()) > 0 {
			docFile = checkFlags.Arg(0)
		}
		if err := cmd.RunCheck(docFile, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		configFile := diffFlags.String("config", "", "Settings file (default "+brand.GetConfigPath()+")")
		docFile := diffFlags.String("file", "", "Read the network-config from a file instead of the seed volume")
		diffFlags.Parse(os.Args[2:])

		if err := cmd.RunDiff(*configFile, *docFile); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "show":
		if err := cmd.RunShow(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Show failed: %v\n", err)
			os.Exit(1)
		}

	case "version", "-version", "--version":
		fmt.Printf("%s %s (built %s, commit %s)\n",
			brand.Name, brand.Version, brand.BuildTime, brand.GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - %s

Usage: %s <command> [options]

Commands:
  apply    Apply the network-config document to the live adapters
             -config <file>  settings file (default %s)
             -file <file>    document file instead of seed volume discovery
             -dry-run, -n    print the operations without applying them
             -verify         probe gateways and DNS after applying
  check    Parse a document and summarize it
             -v              also print the operations an apply would perform
  diff     Compare the document against live adapter state
  show     Inspect state
             adapters        live adapter table
             document <file> parsed document details
  version  Print version information
  help     Show this help
`, brand.Name, brand.Description, brand.BinaryName, brand.GetConfigPath())
}
