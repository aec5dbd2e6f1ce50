package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/chzyer/readline"
	"github.com/pontaoski/sepia/config"
	"github.com/pontaoski/sepia/errors"
	"github.com/pontaoski/sepia/lexer"
	"github.com/pontaoski/sepia/parser"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

const sourceSuffix = ".sp"

type frontend struct {
	info   config.ModuleInformation
	log    *slog.Logger
	closer io.Closer
	trace  bool
	out    io.Writer
	errOut io.Writer
}

func (f *frontend) setup(c *cli.Context) error {
	info, err := config.LoadIfExists(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("lenient") {
		info.LenientOperators = c.Bool("lenient")
	}
	if c.IsSet("log-level") {
		info.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		info.LogFile = c.String("log-file")
	}

	log, closer, err := newLogger(info.LogLevel, info.LogFile, f.errOut)
	if err != nil {
		return err
	}

	f.info = info
	f.log = log
	f.closer = closer
	f.trace = c.Bool("trace")
	f.log.Debug("loaded module information", "package", info.Package, "lenient", info.LenientOperators)
	return nil
}

func (f *frontend) teardown(c *cli.Context) error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

func (f *frontend) lexerOptions() []lexer.Option {
	opts := []lexer.Option{lexer.WithLogger(f.log)}
	if f.info.LenientOperators {
		opts = append(opts, lexer.WithLenientOperators())
	}
	return opts
}

func (f *frontend) parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithLogger(f.log),
		parser.WithLexerOptions(f.lexerOptions()...),
	}
}

// report prints diagnostics and reports whether there were any.
func (f *frontend) report(err error) bool {
	if err == nil {
		return false
	}
	if f.trace {
		tracerr.PrintSourceColor(err)
		return true
	}

	diags, ok := tracerr.Unwrap(err).(errors.List)
	if !ok {
		fmt.Fprintf(f.errOut, "error: %s\n", err)
		return true
	}
	for _, d := range diags {
		fmt.Fprintf(f.errOut, "error: %s\n", d)
	}
	return true
}

func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), sourceSuffix) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (f *frontend) initModule(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return cli.Exit("no module name provided", 1)
	}
	path := c.String("config")
	if err := config.Write(path, config.ModuleInformation{Package: name}); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	f.log.Info("wrote module information", "file", path, "package", name)
	return nil
}

func (f *frontend) lexFile(c *cli.Context) error {
	file := c.Args().First()
	if file == "" {
		return cli.Exit("no file provided", 1)
	}
	handle, err := os.Open(file)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer handle.Close()

	l := lexer.NewLexer(handle, file, f.lexerOptions()...)
	for tok := range l.All() {
		fmt.Fprintf(f.out, "%d:%d\t%s\n", tok.Position.Line, tok.Position.Column, tok)
	}

	if f.report(l.Errors().Err()) {
		return cli.Exit("", 1)
	}
	return nil
}

func (f *frontend) parseFiles(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		found, err := sourceFiles(".")
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		files = found
	}

	failed := false
	for _, file := range files {
		handle, err := os.Open(file)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		program, err := parser.Parse(handle, file, f.parserOptions()...)
		handle.Close()
		f.log.Info("parsed file", "file", file, "statements", len(program.Statements))

		if f.report(err) {
			failed = true
			continue
		}
		if c.Bool("dump") {
			fmt.Fprintln(f.out, repr.String(program, repr.Indent("  ")))
		} else {
			fmt.Fprintln(f.out, program)
		}
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}

func (f *frontend) repl(c *cli.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "#> ",
		Stdout: f.out,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		program, err := parser.Parse(strings.NewReader(line), "repl", f.parserOptions()...)
		if f.report(err) {
			continue
		}
		fmt.Fprintln(f.out, program)
	}
}

func newApp(f *frontend) *cli.App {
	return &cli.App{
		Name:  "sepia",
		Usage: "sepia front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.DefaultFile,
				Usage: "module information file (yaml or toml)",
			},
			&cli.BoolFlag{
				Name:  "lenient",
				Usage: "allow any character after a plain operator",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "also append JSON logs to this file",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print diagnostics with stack traces",
			},
		},
		Before: f.setup,
		After:  f.teardown,
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "write module information for a new module",
				Action: f.initModule,
			},
			{
				Name:   "lex",
				Usage:  "print the tokens of a file",
				Action: f.lexFile,
			},
			{
				Name:  "parse",
				Usage: "parse files, or every " + sourceSuffix + " file in the current directory",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Value: false,
					},
				},
				Action: f.parseFiles,
			},
			{
				Name:   "repl",
				Usage:  "parse lines interactively",
				Action: f.repl,
			},
		},
	}
}

func main() {
	f := &frontend{out: os.Stdout, errOut: os.Stderr}
	if err := newApp(f).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
