package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonlex/internal/analyzer"
	"github.com/mcncl/jsonlex/internal/config"
	"github.com/mcncl/jsonlex/internal/errors"
	"github.com/mcncl/jsonlex/internal/generator"
	"github.com/mcncl/jsonlex/internal/models"
	"github.com/mcncl/jsonlex/internal/source"
)

// CLI defines the command-line interface
var CLI struct {
	Input           string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output          string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format          string `help:"Output format: text, json, yaml or pretty." short:"f"`
	KeepGoing       bool   `help:"Report every lexing error instead of stopping at the first." short:"k"`
	MaxErrors       int    `help:"Stop after this many errors in keep-going mode (0 for no limit, -1 to use the config value)." default:"-1"`
	Summary         bool   `help:"Append token counts, nesting depth and bracket balance." short:"s"`
	RequireBalanced bool   `help:"Fail when brackets are not balanced." name:"require-balanced"`
	Config          string `help:"Path to configuration file. Searched for as .jsonlex.yml if not specified." short:"c" type:"path"`
	Debug           bool   `help:"Enable debug logging." short:"d"`
	Version         bool   `help:"Show version information." short:"v"`
	Interactive     bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonlex"),
		kong.Description("A tool to split JSON into lexical tokens"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonlex version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonlex --help\n")
		os.Exit(1)
	}
}

// newContext loads configuration and sets up logging
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	// Boolean flags can only switch options on; config file values stay
	// in effect otherwise.
	overrides := config.CLIOverrides{
		Format:          CLI.Format,
		KeepGoing:       setFlag(CLI.KeepGoing),
		Summary:         setFlag(CLI.Summary),
		RequireBalanced: setFlag(CLI.RequireBalanced),
		Debug:           setFlag(CLI.Debug),
	}
	if CLI.MaxErrors >= 0 {
		overrides.MaxErrors = &CLI.MaxErrors
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}

	ctx := &Context{Config: cfg, Logger: newLogger(cfg.Dev.Debug)}
	if configPath != "" {
		ctx.Logger.Debug("loaded config file", "path", configPath)
	}
	return ctx, nil
}

func setFlag(b bool) *bool {
	if !b {
		return nil
	}
	return &b
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config

	// 1. Tokenize input
	stream, err := readInput(ctx)
	if err != nil {
		return err
	}

	// 2. Summarise the stream if requested
	var summary *models.Summary
	analyzerInst := analyzer.NewAnalyzerWithConfig(cfg)
	if cfg.Analysis.Summary {
		s := analyzerInst.Analyze(stream)
		summary = &s
	}

	// 3. Render output
	generatorInst := generator.NewGeneratorWithConfig(cfg)
	out, err := generatorInst.Generate(stream, summary)
	if err != nil {
		return errors.NewFormatError("failed to render tokens", err)
	}
	if err := writeOutput(out); err != nil {
		return err
	}

	// 4. Report failures after the output has been written
	if err := source.FirstError(stream); err != nil {
		return err
	}
	if cfg.Analysis.RequireBalanced {
		if err := analyzerInst.CheckBalanced(stream); err != nil {
			return errors.NewAnalysisError(err.Error(), errors.ErrUnbalanced)
		}
	}
	return nil
}

func sourceOptions(ctx *Context) source.Options {
	return source.Options{
		KeepGoing: ctx.Config.Lexing.KeepGoing,
		MaxErrors: ctx.Config.Lexing.MaxErrors,
		Logger:    ctx.Logger,
	}
}

// readInput tokenizes JSON from file or stdin
func readInput(ctx *Context) (models.TokenStream, error) {
	opts := sourceOptions(ctx)
	if CLI.Input != "" {
		return source.TokenizeFile(CLI.Input, opts)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.TokenStream{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(os.Stdin, opts)
		}
		return models.TokenStream{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Piped input
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.TokenStream{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(jsonData) == 0 {
		return models.TokenStream{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return source.TokenizeString(string(jsonData), opts)
}

// writeOutput writes rendered tokens to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(out), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Tokens written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Print(out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON and signal completion with
// Ctrl+D (EOF)
func readInteractiveInput(in io.Reader, opts source.Options) (models.TokenStream, error) {
	fmt.Fprintln(os.Stderr, "jsonlex Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.TokenStream{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return models.TokenStream{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return source.TokenizeString(jsonData, opts)
}
