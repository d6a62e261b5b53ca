package zygo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/shurcooL/go-goon"
)

var continuationPrompt = "... "

// lineSource is where the repl gets its input: a Prompter on a terminal,
// a plainReader otherwise.
type lineSource interface {
	Getline(prompt *string) (string, error)
}

type plainReader struct {
	prompt string
	reader *bufio.Reader
	out    io.Writer
}

func newPlainReader(prompt string, in io.Reader, out io.Writer) *plainReader {
	return &plainReader{prompt: prompt, reader: bufio.NewReader(in), out: out}
}

func (pr *plainReader) Getline(prompt *string) (string, error) {
	if prompt == nil {
		fmt.Fprint(pr.out, pr.prompt)
	} else {
		fmt.Fprint(pr.out, *prompt)
	}
	line, err := pr.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// getExpression reads lines until they hold only complete forms.
func getExpression(env *Zlisp, src lineSource) (line string, xs []Sexp, err error) {
	line, err = src.Getline(nil)
	if err != nil {
		return "", nil, err
	}
	var nextline string
	for {
		xs, err = env.ReadString(line)
		if err != ErrMoreInputNeeded {
			return line, xs, err
		}
		nextline, err = src.Getline(&continuationPrompt)
		if err != nil {
			return "", nil, err
		}
		line += "\n" + nextline
	}
}

// FormatResult renders a value the way the repl prints it.
func FormatResult(x Sexp, cfg *ZlispConfig) (string, error) {
	switch {
	case cfg.JsonOutput:
		raw, err := SexpToJson(x)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	case cfg.DumpOutput:
		iface, err := SexpToGo(x)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(goon.Sdump(iface), "\n"), nil
	}
	return x.SexpString(nil), nil
}

func processDumpCommand(env *Zlisp, out io.Writer) {
	fmt.Fprint(out, env.GlobalScope().Show(env, NewPrintState(), "dump of"))
}

// runRepl is the read-eval-print loop. It returns nil at end of input
// and the failure itself when cfg.ExitOnFailure is set.
func runRepl(env *Zlisp, cfg *ZlispConfig, src lineSource, out io.Writer) error {
	for {
		line, xs, err := getExpression(env, src)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			if cfg.ExitOnFailure {
				return err
			}
			continue
		}

		switch strings.TrimSpace(line) {
		case ".quit":
			return nil
		case ".dump":
			processDumpCommand(env, out)
			continue
		case ".trace":
			env.trace = !env.trace
			fmt.Fprintf(out, "trace: %v.\n", env.trace)
			continue
		case ".verb":
			Verbose = !Verbose
			fmt.Fprintf(out, "verbose: %v.\n", Verbose)
			continue
		}
		if len(xs) == 0 {
			continue
		}

		res := env.EvalExpressions(xs)
		if res.Kind != Succeeded {
			fmt.Fprintf(out, "error: %v\n", res.Err)
			if cfg.ExitOnFailure {
				return res.Err
			}
			continue
		}
		if res.Value == SexpNull && !cfg.JsonOutput && !cfg.DumpOutput {
			continue
		}
		s, err := FormatResult(res.Value, cfg)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, s)
	}
}

func Repl(env *Zlisp, cfg *ZlispConfig) error {
	if !cfg.Quiet {
		fmt.Printf("zygo version %s\n", Version())
		fmt.Printf("press tab (repeatedly) to get completion suggestions. Ctrl-d to exit.\n")
	}
	var src lineSource
	if cfg.NoLiner {
		src = newPlainReader(cfg.Prompt, os.Stdin, os.Stdout)
	} else {
		pr := NewPrompter(cfg.Prompt)
		defer pr.Close()
		src = pr
	}
	return runRepl(env, cfg, src, os.Stdout)
}

func runScript(env *Zlisp, fname string, cfg *ZlispConfig) error {
	res := env.SourceFile(fname)
	if res.Kind != Succeeded {
		return res.Err
	}
	return nil
}

// runCommand evaluates the -c expressions and prints the result.
func runCommand(env *Zlisp, cfg *ZlispConfig, out io.Writer) error {
	x, err := env.EvalString(cfg.Command)
	if err != nil {
		return err
	}
	s, err := FormatResult(x, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, s)
	return nil
}

// like main() for a standalone repl, now in library
func ReplMain(cfg *ZlispConfig) {
	env := NewZlisp()
	env.SetTrace(cfg.Trace)

	if cfg.CpuProfile != "" {
		f, err := os.Create(cfg.CpuProfile)
		if err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			fmt.Println(err)
			os.Exit(-1)
		}
		defer pprof.StopCPUProfile()
	}

	var err error
	args := cfg.Flags.Args()
	switch {
	case cfg.Command != "":
		err = runCommand(env, cfg, os.Stdout)
	case len(args) > 0:
		err = runScript(env, args[0], cfg)
		if err != nil && !cfg.ExitOnFailure {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			err = Repl(env, cfg)
		}
	default:
		err = Repl(env, cfg)
	}

	if cfg.MemProfile != "" {
		f, ferr := os.Create(cfg.MemProfile)
		if ferr != nil {
			fmt.Println(ferr)
			os.Exit(-1)
		}
		defer f.Close()
		if werr := pprof.Lookup("heap").WriteTo(f, 1); werr != nil {
			fmt.Println(werr)
			os.Exit(-1)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
