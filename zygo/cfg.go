package zygo

import (
	"flag"
	"fmt"
)

// configure a zygo repl
type ZlispConfig struct {
	CpuProfile    string
	MemProfile    string
	ExitOnFailure bool
	Flags         *flag.FlagSet
	Command       string
	Quiet         bool
	Trace         bool

	// print results as JSON, or as a goon dump of their Go form
	JsonOutput bool
	DumpOutput bool

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool
	Prompt  string // default "zygo> "
}

func NewZlispConfig(cmdname string) *ZlispConfig {
	return &ZlispConfig{
		Flags: flag.NewFlagSet(cmdname, flag.ExitOnError),
	}
}

// call DefineFlags before myflags.Parse()
func (c *ZlispConfig) DefineFlags() {
	c.Flags.StringVar(&c.CpuProfile, "cpuprofile", "", "write cpu profile to file")
	c.Flags.StringVar(&c.MemProfile, "memprofile", "", "write mem profile to file")
	c.Flags.BoolVar(&c.ExitOnFailure, "exitonfail", false, "exit on failure instead of continuing the repl")
	c.Flags.StringVar(&c.Command, "c", "", "expressions to evaluate")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the version banner")
	c.Flags.BoolVar(&c.Trace, "trace", false, "trace special forms and calls (warning: very verbose and slow)")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read plain lines from stdin instead of using line editing")
	c.Flags.BoolVar(&c.JsonOutput, "json", false, "print results as JSON")
	c.Flags.BoolVar(&c.DumpOutput, "dump", false, "print results as a goon dump of their Go form")
	c.Flags.StringVar(&c.Prompt, "prompt", "", "repl prompt")
}

// call c.ValidateConfig() after myflags.Parse()
func (c *ZlispConfig) ValidateConfig() error {
	if c.JsonOutput && c.DumpOutput {
		return fmt.Errorf("-json and -dump cannot both be given")
	}
	if c.Prompt == "" {
		c.Prompt = "zygo> "
	}
	return nil
}
