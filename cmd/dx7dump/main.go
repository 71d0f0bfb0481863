// Command dx7dump formats a Yamaha DX7 voice bank or single voice sysex file
// as human readable text. The output is meant to be diffed.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fjl/dx7dump/dx7"
	"github.com/fjl/dx7dump/internal/cmdutil"
	"github.com/fjl/dx7dump/internal/render"
	"github.com/fjl/dx7dump/internal/version"
	"github.com/pkg/errors"
)

const helpText = `Usage: dx7dump [OPTIONS] FILE

Options:
  -l, --long          long listing (show parameter values)
  -c, --compact       compact listing (can also be combined with -l)
  -p NUM, --patch NUM display patch number NUM
  -d, --find-dupes    report voices that differ only in their name
  --fix               try to fix corrupt files
                        creates a backup of the original file (*.ORIG)
  --no-backup         don't create backups when fixing files
                        WARNING: This option might result in data-loss!
                        make sure you already have a backup of the sysex-file
  -y, --yes           no questions asked. Answer everything with YES for '--fix'
  -e, --errors        report only files with errors
  -x, --hex           show voice names also as HEX and print single voice data in HEX
  -a, --ascii         use ASCII characters to show voice-names and algorithms (default = unicode)
  -u, --unicode       use unicode characters to show voice-names and algorithms
  -format FORMAT      output format: text, json or yaml
  -config FILE        load option defaults from a YAML file (default $DX7DUMP_CONFIG)
  -v, --version       version info
  -h, --help          this help
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options is the fully resolved configuration of one invocation.
type options struct {
	render     render.Options
	errorsOnly bool
	findDupes  bool
	fix        bool
	repair     dx7.RepairOptions
	assumeYes  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "dx7dump: ", 0)
	opts, path, code := parseArgs(args, stdout, logger)
	if opts == nil {
		return code
	}
	return processFile(path, opts, stdin, stdout, stderr, logger)
}

// parseArgs handles the command line. It returns nil options if the program
// should exit with the returned code.
func parseArgs(args []string, stdout io.Writer, logger *log.Logger) (*options, string, int) {
	fs := flag.NewFlagSet("dx7dump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		long, compact, dupes, fix, noBackup, yes bool
		errorsOnly, hex, ascii, unicode          bool
		showVersion, help                        bool
		patch                                    int
		format, configFile                       string
	)
	boolFlag := func(p *bool, names ...string) {
		for _, name := range names {
			fs.BoolVar(p, name, false, "")
		}
	}
	boolFlag(&long, "l", "long")
	boolFlag(&compact, "c", "compact")
	boolFlag(&dupes, "d", "find-dupes")
	boolFlag(&fix, "fix")
	boolFlag(&noBackup, "no-backup")
	boolFlag(&yes, "y", "yes")
	boolFlag(&errorsOnly, "e", "errors")
	boolFlag(&hex, "x", "hex")
	boolFlag(&ascii, "a", "ascii")
	boolFlag(&unicode, "u", "unicode")
	boolFlag(&showVersion, "v", "version")
	boolFlag(&help, "h", "help")
	fs.IntVar(&patch, "p", 0, "")
	fs.IntVar(&patch, "patch", 0, "")
	fs.StringVar(&format, "format", "", "")
	fs.StringVar(&configFile, "config", "", "")

	if err := fs.Parse(args); err != nil {
		logger.Println(err)
		logger.Println("Try -h for help.")
		return nil, "", 2
	}
	switch {
	case help:
		fmt.Fprint(stdout, helpText)
		return nil, "", 0
	case showVersion:
		fmt.Fprintf(stdout, "dx7dump %s\n%s\n", version.String(), version.About)
		return nil, "", 0
	case fs.NArg() != 1:
		logger.Println("Expecting a filename.")
		return nil, "", 2
	}

	cfg, err := cmdutil.LoadConfig(cmdutil.ConfigPath(configFile))
	if err != nil {
		logger.Println(err)
		return nil, "", 1
	}
	// Flags given on the command line override the config file.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	isSet := func(names ...string) bool {
		for _, name := range names {
			if set[name] {
				return true
			}
		}
		return false
	}
	merge := func(flagValue *bool, cfgValue bool, names ...string) {
		if !isSet(names...) {
			*flagValue = cfgValue
		}
	}
	merge(&long, cfg.Long, "l", "long")
	merge(&compact, cfg.Compact, "c", "compact")
	merge(&hex, cfg.Hex, "x", "hex")
	merge(&errorsOnly, cfg.ErrorsOnly, "e", "errors")
	merge(&dupes, cfg.FindDupes, "d", "find-dupes")
	merge(&noBackup, cfg.NoBackup, "no-backup")
	merge(&yes, cfg.AssumeYes, "y", "yes")
	if !isSet("format") {
		format = cfg.Format
	}
	useUnicode := !cfg.ASCII
	switch {
	case isSet("a", "ascii") && ascii:
		useUnicode = false
	case isSet("u", "unicode") && unicode:
		useUnicode = true
	}

	outFormat, err := render.ParseFormat(format)
	if err != nil {
		logger.Println(err)
		return nil, "", 2
	}
	if patch < 0 || patch > dx7.NumVoices {
		logger.Printf("patch number %d out of range 1..%d", patch, dx7.NumVoices)
		return nil, "", 2
	}
	opts := &options{
		render: render.Options{
			Long:    long || patch > 0,
			Compact: compact,
			Patch:   patch,
			Hex:     hex,
			Unicode: useUnicode,
			Format:  outFormat,
		},
		errorsOnly: errorsOnly,
		findDupes:  dupes,
		fix:        fix,
		repair:     dx7.RepairOptions{NoBackup: noBackup},
		assumeYes:  yes,
	}
	return opts, fs.Arg(0), 0
}

// processFile analyzes one dump file and returns the exit code.
func processFile(path string, opts *options, stdin io.Reader, stdout, stderr io.Writer, logger *log.Logger) int {
	// Structured output owns stdout, so questions go elsewhere.
	promptOut := stdout
	if opts.render.Format != render.FormatText {
		promptOut = stderr
	}
	r := render.New(stdout, opts.render)

	ctx, err := cmdutil.Open(path)
	if err != nil {
		reportOpenError(r, path, err)
		return 1
	}
	f := ctx.File

	if opts.render.Format != render.FormatText {
		fv := render.NewFileView(path, f, opts.render.Patch, opts.render.Unicode)
		if err := render.Export(stdout, fv, opts.render.Format); err != nil {
			r.Printf("ERROR: %v\n", err)
			return 1
		}
	} else if code := report(r, path, ctx, opts, logger); code != 0 {
		return code
	}

	if opts.fix && f.FixNeeded() {
		if opts.assumeYes || cmdutil.Confirm(stdin, promptOut, "Fix this file? [Y/n] ") {
			if err := dx7.Repair(path, f, opts.repair); err != nil {
				fmt.Fprintf(promptOut, "ERROR: %v\n", err)
				return 1
			}
		}
	}

	// Duplicates are reported last, after any repair.
	if opts.findDupes && f.Bank != nil && opts.render.Format == render.FormatText {
		if err := r.Duplicates(dx7.FindDuplicates(f.Bank)); err != nil {
			logger.Println(err)
			return 1
		}
	}
	return 0
}

// report prints the framing diagnostics and the text rendering of the file.
func report(r *render.Renderer, path string, ctx *cmdutil.FileContext, opts *options, logger *log.Logger) int {
	f := ctx.File
	warned := false
	if ctx.Headerless() {
		r.Filename(path)
		r.Printf("WARNING: file seems to be a headerless dump (%d Bytes)\n", ctx.Size)
		warned = true
	}
	if f.Framing != nil && !f.Framing.OK() {
		r.Filename(path)
		for _, msg := range f.Framing.Diagnostics() {
			r.Printf("%s\n", msg)
		}
		warned = true
	}

	if !opts.errorsOnly {
		if err := r.File(path, f, warned); err != nil {
			logger.Println(err)
			return 1
		}
	} else if warned {
		r.Printf("\n")
	}
	return 0
}

func reportOpenError(r *render.Renderer, path string, err error) {
	var (
		sizeErr    *dx7.SizeError
		framingErr *dx7.FramingError
	)
	switch {
	case errors.As(err, &sizeErr):
		r.Filename(path)
		if errors.Is(sizeErr, dx7.ErrTooLarge) {
			r.Printf("File too big (%d Bytes)\n\n", sizeErr.Size)
		} else {
			r.Printf("File too small (%d Bytes)\n\n", sizeErr.Size)
		}
	case errors.As(err, &framingErr):
		r.Filename(path)
		r.Printf("ERROR: %v\n\n", framingErr)
	default:
		r.Printf("ERROR: %v\n", err)
	}
}
