// Package runner wires the CLI's flags to the generator pipeline: load the
// lexical definition, compile it to a DFA/scanner, load the grammar,
// compute FIRST/FOLLOW and the LR(0) collection, build the SLR(1) table,
// scan the source (or read a pre-lexed token stream), and drive the
// shift-reduce parser.
package runner

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Options holds every CLI flag lexparsegen accepts.
type Options struct {
	LexFile    string
	GrammarFile string
	SourceFile string
	TokensFile string
	DFAOut     string
	DFAIn      string
	Trace      bool
	Debug      bool
	Demo       bool
	Verbose    bool
}

// ParseFlags parses os.Args into Options using goflags, following the
// grouped-flag layout projectdiscovery/alterx's runner.ParseFlags uses.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("Generates a maximal-munch scanner and SLR(1) parser from a regex-definition file and a BNF grammar.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.LexFile, "lex", "l", "", "regex-definition file (NAME: regex [%ignore] per line)"),
		flagSet.StringVarP(&opts.GrammarFile, "grammar", "g", "", "BNF grammar file (Head ::= Body | Body per line)"),
		flagSet.StringVarP(&opts.SourceFile, "source", "s", "", "source text file to scan"),
		flagSet.StringVar(&opts.TokensFile, "tokens", "", "pre-lexed token stream file (KIND[,ATTRIBUTE] per line), used instead of -source"),
		flagSet.StringVar(&opts.DFAIn, "dfa-in", "", "load a previously persisted compact DFA instead of compiling -lex"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVar(&opts.DFAOut, "dfa-out", "", "persist the compiled DFA to this file in the compact text format"),
		flagSet.BoolVar(&opts.Trace, "trace", false, "print the shift-reduce step trace"),
		flagSet.BoolVar(&opts.Debug, "debug", false, "print FIRST/FOLLOW sets, the LR(0) collection and the SLR table"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging"),
	)

	flagSet.CreateGroup("demo", "Demo",
		flagSet.BoolVar(&opts.Demo, "demo", false, "run the built-in arithmetic-expression example instead of reading -lex/-grammar"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}

	if !opts.Demo && opts.LexFile == "" {
		gologger.Fatal().Msgf("lexparsegen: -lex is required unless -demo is set")
	}
	if !opts.Demo && opts.GrammarFile == "" {
		gologger.Fatal().Msgf("lexparsegen: -grammar is required unless -demo is set")
	}

	return opts
}
