package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tomaswrobel/scrap-native/pkg/config"
	"github.com/tomaswrobel/scrap-native/pkg/driver"
	"github.com/tomaswrobel/scrap-native/pkg/errors"
	"github.com/tomaswrobel/scrap-native/pkg/parser"
	"github.com/tomaswrobel/scrap-native/pkg/rewrite"
	"github.com/tomaswrobel/scrap-native/pkg/source"
)

const version = "0.1.0"

var commands = map[string]func(args []string) error{
	"transform": runTransform,
	"vars":      runVars,
	"ast":       runAST,
	"play":      runPlay,
	"init":      runInit,
}

func main() {
	verbose := flag.Bool("v", false, "Log each stage to stderr")
	flag.Usage = printUsage
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			defer logger.Sync()
			driver.SetLogger(logger)
			rewrite.SetLogger(logger)
		}
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(64) // usage error
	}

	switch name := args[0]; name {
	case "version", "--version":
		fmt.Printf("stoop version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		run, ok := commands[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
			if s := suggest(name); s != "" {
				fmt.Fprintf(os.Stderr, "Did you mean %q?\n", s)
			}
			os.Exit(64)
		}
		if err := run(args[1:]); err != nil {
			if diags := driver.Diagnostics(err); len(diags) > 0 {
				errors.DisplayErrors(os.Stderr, diags, errors.UseColor(os.Stderr))
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
	}
}

// suggest returns the known command closest to name, if any is close.
func suggest(name string) string {
	names := []string{"version", "help"}
	for cmd := range commands {
		names = append(names, cmd)
	}
	sort.Strings(names)

	best, bestDist := "", 3
	for _, candidate := range names {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// readInput loads the named file, or stdin when there is none.
func readInput(args []string) (*source.SourceFile, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return source.NewStdinSource(string(data)), nil
	case 1:
		return source.ReadFile(args[0])
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
}

func newTranspiler(configPath string) (*driver.Transpiler, error) {
	cfg, err := config.Find(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &driver.Transpiler{Options: cfg.RewriteOptions(), Indent: cfg.Emit.Indent}, nil
}

func runTransform(args []string) error {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	configPath := fs.String("config", "", "Configuration file (default: ./stoop.yaml when present)")
	output := fs.String("o", "", "Output file (default: stdout)")
	jobs := fs.Int("j", 0, "Parallel workers when several files are given (default: number of CPUs)")
	fs.Parse(args)

	tr, err := newTranspiler(*configPath)
	if err != nil {
		return err
	}
	if fs.NArg() > 1 {
		if *output != "" {
			return fmt.Errorf("-o cannot be used with more than one input file")
		}
		return transformFiles(tr, fs.Args(), *jobs)
	}
	sf, err := readInput(fs.Args())
	if err != nil {
		return err
	}
	code, err := tr.TransformSource(sf)
	if err != nil {
		return err
	}
	if *output == "" {
		_, err = io.WriteString(os.Stdout, code)
		return err
	}
	if err := os.WriteFile(*output, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", *output)
	return nil
}

// transformFiles writes each input next to itself with a .js extension.
func transformFiles(tr *driver.Transpiler, inputs []string, workers int) error {
	jobs := make([]driver.FileJob, len(inputs))
	for i, input := range inputs {
		jobs[i] = driver.FileJob{Input: input}
	}
	results, stats := tr.WriteFiles(context.Background(), jobs, workers)
	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", r.Output)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", r.Input, r.Err)
		if diags := driver.Diagnostics(r.Err); len(diags) > 0 {
			errors.DisplayErrors(os.Stderr, diags, errors.UseColor(os.Stderr))
		}
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", stats.Failed, len(jobs))
	}
	return nil
}

func runVars(args []string) error {
	fs := flag.NewFlagSet("vars", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print the variables as JSON")
	fs.Parse(args)

	sf, err := readInput(fs.Args())
	if err != nil {
		return err
	}
	program, err := driver.NewTranspiler().ParseSource(sf)
	if err != nil {
		return err
	}
	vars := rewrite.Variables(program)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(vars)
	}
	for _, v := range vars {
		fmt.Printf("%s: %s\n", v.Name, strings.Join(v.Types, " | "))
	}
	return nil
}

func runAST(args []string) error {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	rewritten := fs.Bool("rewritten", false, "Dump the tree after the rewrite")
	configPath := fs.String("config", "", "Configuration file used with -rewritten")
	fs.Parse(args)

	tr, err := newTranspiler(*configPath)
	if err != nil {
		return err
	}
	sf, err := readInput(fs.Args())
	if err != nil {
		return err
	}
	program, err := tr.ParseSource(sf)
	if err != nil {
		return err
	}
	if *rewritten {
		rewrite.New(tr.Options).Program(program)
	}
	parser.Dump(os.Stdout, program)
	return nil
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configPath := fs.String("config", "", "Configuration file (default: ./stoop.yaml when present)")
	fs.Parse(args)

	tr, err := newTranspiler(*configPath)
	if err != nil {
		return err
	}
	var initial string
	if fs.NArg() == 1 {
		sf, err := source.ReadFile(fs.Arg(0))
		if err != nil {
			return err
		}
		initial = sf.Content
	}

	p := tea.NewProgram(newPlayModel(tr, initial), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("config", config.FileName, "File to create")
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args)

	if err := config.Write(*path, config.Default(), *force); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", *path)
	return nil
}

func printUsage() {
	fmt.Println(`stoop - cooperative rewrite for Scrap scripts

Usage:
  stoop [-v] <command> [options]

Commands:
  transform   Rewrite a script and print the JavaScript (stdin when no file)
  vars        List the variables declared by top-level interfaces
  ast         Dump the parsed tree
  play        Edit a script and watch its rewrite live
  init        Write a default stoop.yaml
  version     Print version information
  help        Show this help message

Examples:
  stoop transform sprite.ts
  stoop transform -o sprite.js sprite.ts
  stoop transform -j 4 stage.ts sprite1.ts sprite2.ts
  stoop vars -json stage.ts
  stoop -v transform --config stoop.yaml < sprite.ts

Configuration:
  By default, stoop looks for 'stoop.yaml' in the current directory.
  Use --config to specify a different configuration file.`)
}
