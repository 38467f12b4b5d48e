package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jcgregorio/slog"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"monkey/interpreter-go/pkg/driver"
	"monkey/interpreter-go/pkg/lexer"
	"monkey/interpreter-go/pkg/repl"
)

const cliToolVersion = "monkey 0.1.0-dev"

// configEnvVar supplies the default for --config.
const configEnvVar = "MONKEY_CONFIG"

// errDiagnostics marks a command that already reported parse diagnostics and
// only needs a failing exit status.
var errDiagnostics = errors.New("source has diagnostics")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return runWith(args, os.Stdin, os.Stdout, os.Stderr)
}

// cliEnv carries the flags and state shared by every command.
type cliEnv struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flagConfig  string
	flagVerbose bool
	flagNoColor bool

	manifest      *driver.Manifest
	manifestFound bool
	log           slog.Logger
	loader        *driver.Loader
}

func runWith(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	env := &cliEnv{stdin: stdin, stdout: stdout, stderr: stderr}
	root := env.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(stderr, "monkey: %v\n", err)
		}
		return 1
	}
	return 0
}

func (e *cliEnv) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "monkey",
		Short: "Monkey language front end",
		Long: `
monkey tokenizes and parses Monkey source. With no subcommand it starts the
interactive shell.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
		RunE:              e.runRepl,
		Args:              cobra.NoArgs,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&e.flagConfig, "config", os.Getenv(configEnvVar), "Path to monkey.yml (default: discovered upward from the working directory)")
	flags.BoolVarP(&e.flagVerbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&e.flagNoColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		e.replCmd(),
		e.parseCmd(),
		e.tokensCmd(),
		e.checkCmd(),
		e.versionCmd(),
	)
	return root
}

// setup loads the manifest and builds the logger before any command runs.
func (e *cliEnv) setup(cmd *cobra.Command, _ []string) error {
	manifest, found, err := loadManifest(e.flagConfig)
	if err != nil {
		return err
	}
	e.manifest = manifest
	e.manifestFound = found

	level := manifest.Log.Level
	if e.flagVerbose {
		level = driver.LogLevelDebug
	}
	e.log = newLogger(e.stderr, level)
	e.loader = driver.NewLoader(e.log)
	if found {
		e.log.Debugf("using manifest %s", manifest.Path)
	} else {
		e.log.Debugf("no %s found; using defaults", driver.ManifestFileName)
	}
	return nil
}

// loadManifest honours an explicit path, otherwise searches upward from the
// working directory and falls back to defaults when nothing is found.
func loadManifest(explicit string) (*driver.Manifest, bool, error) {
	if explicit != "" {
		m, err := driver.LoadManifest(explicit)
		if err != nil {
			return nil, false, err
		}
		return m, true, nil
	}
	path, err := driver.FindManifest(".")
	if errors.Is(err, driver.ErrManifestNotFound) {
		return driver.DefaultManifest(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	m, err := driver.LoadManifest(path)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func (e *cliEnv) colorDisabled() bool {
	if e.flagNoColor || !e.manifest.REPL.Color {
		return true
	}
	f, ok := e.stdout.(*os.File)
	return !ok || !isatty.IsTerminal(f.Fd())
}

//-----------------------------------------------------------------------------
// repl
//-----------------------------------------------------------------------------

func (e *cliEnv) replCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE:  e.runRepl,
	}
	cmd.Flags().String("mode", "", "Output mode: render, json or tokens (default from monkey.yml)")
	return cmd
}

func (e *cliEnv) runRepl(cmd *cobra.Command, _ []string) error {
	opts := repl.Options{
		Prompt:  e.manifest.REPL.Prompt,
		Mode:    e.manifest.REPL.Mode,
		NoColor: e.colorDisabled(),
	}
	if flag := cmd.Flags().Lookup("mode"); flag != nil && flag.Changed {
		mode, err := repl.ParseMode(flag.Value.String())
		if err != nil {
			return err
		}
		opts.Mode = mode
	}

	if f, ok := e.stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) && liner.TerminalSupported() {
		return e.runTerminalRepl(opts)
	}
	e.log.Debugf("input is not a terminal; reading lines without editing")
	return repl.Start(repl.NewScannerReader(e.stdin), e.stdout, opts)
}

func (e *cliEnv) runTerminalRepl(opts repl.Options) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	history := e.manifest.REPL.History
	if history != "" {
		if f, err := os.Open(history); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				e.log.Warningf("read history %s: %v", history, err)
			}
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(history)
			if err != nil {
				e.log.Warningf("write history %s: %v", history, err)
				return
			}
			if _, err := ln.WriteHistory(f); err != nil {
				e.log.Warningf("write history %s: %v", history, err)
			}
			_ = f.Close()
		}()
	}

	opts.OnLine = ln.AppendHistory
	fmt.Fprintf(e.stdout, "%s (type exit or Ctrl-D to quit)\n", cliToolVersion)
	return repl.Start(abortAsEOF{ln}, e.stdout, opts)
}

// abortAsEOF ends the session on Ctrl-C the same way Ctrl-D does.
type abortAsEOF struct {
	*liner.State
}

func (a abortAsEOF) Prompt(prompt string) (string, error) {
	line, err := a.State.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return line, err
}

//-----------------------------------------------------------------------------
// parse / tokens
//-----------------------------------------------------------------------------

type parseFlags struct {
	json bool
	rev  string
}

func (e *cliEnv) parseCmd() *cobra.Command {
	flags := &parseFlags{}
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and print its tree",
		Long: `
Parse a source file and print the rendered program, or the program as JSON
with --json. With --rev the file is read as committed at that git revision.
Diagnostics go to stderr and make the command exit with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runParse(args[0], flags)
		},
	}
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the program as JSON")
	cmd.Flags().StringVar(&flags.rev, "rev", "", "Read the file at this git revision")
	return cmd
}

func (e *cliEnv) readSource(path, rev string) (string, error) {
	if rev == "" {
		return e.loader.ReadFile(path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return e.loader.ReadRevision(filepath.Dir(abs), rev, abs)
}

func (e *cliEnv) runParse(path string, flags *parseFlags) error {
	src, err := e.readSource(path, flags.rev)
	if err != nil {
		return err
	}
	result := driver.Check(path, src)
	if flags.json {
		data, err := json.MarshalIndent(result.Program, "", "  ")
		if err != nil {
			return fmt.Errorf("encode program: %w", err)
		}
		fmt.Fprintln(e.stdout, string(data))
	} else {
		fmt.Fprintln(e.stdout, result.Rendered)
	}
	if !result.OK() {
		for _, d := range result.Diagnostics {
			fmt.Fprintf(e.stderr, "%s: %s\n", path, d.Message)
		}
		return errDiagnostics
	}
	return nil
}

func (e *cliEnv) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := e.loader.ReadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(e.stdout, repl.FormatTokens(lexer.Tokenize(src)))
			return nil
		},
	}
}

//-----------------------------------------------------------------------------
// check
//-----------------------------------------------------------------------------

func (e *cliEnv) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [name...]",
		Short: "Parse every source listed in monkey.yml",
		Long: `
Parse the sources declared under "sources" in monkey.yml, or only the named
ones. Each source is reported on stdout; details of any failure go to stderr.`,
		RunE: e.runCheck,
	}
}

func (e *cliEnv) runCheck(_ *cobra.Command, names []string) error {
	if !e.manifestFound {
		return fmt.Errorf("check requires a manifest: %w", driver.ErrManifestNotFound)
	}
	results, err := e.loader.CheckManifest(e.manifest, names)
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(e.stdout, "ok    %s\n", r.Name)
			continue
		}
		fmt.Fprintf(e.stdout, "FAIL  %s (%d diagnostics, %d placeholders)\n", r.Name, len(r.Diagnostics), r.Placeholders)
	}
	if err != nil {
		fmt.Fprintln(e.stderr, err)
		return errDiagnostics
	}
	e.log.Infof("checked %d sources", len(results))
	return nil
}

func (e *cliEnv) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(e.stdout, cliToolVersion)
		},
	}
}
