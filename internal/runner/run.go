package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/shadowCow/lexparse-go/automata"
	"github.com/shadowCow/lexparse-go/dfaio"
	"github.com/shadowCow/lexparse-go/examples"
	"github.com/shadowCow/lexparse-go/firstfollow"
	"github.com/shadowCow/lexparse-go/grammar"
	"github.com/shadowCow/lexparse-go/lexicaldef"
	"github.com/shadowCow/lexparse-go/lr0"
	"github.com/shadowCow/lexparse-go/parsedriver"
	"github.com/shadowCow/lexparse-go/parsetree"
	"github.com/shadowCow/lexparse-go/scanner"
	"github.com/shadowCow/lexparse-go/slrtable"
	"github.com/shadowCow/lexparse-go/tokenio"
)

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Run executes the full generator pipeline and writes its output to w.
func Run(opts *Options, w io.Writer) error {
	lexText := examples.ArithmeticLexicalDef
	grammarText := examples.ArithmeticGrammar

	if !opts.Demo {
		text, err := readFile(opts.LexFile)
		if err != nil {
			gologger.Error().Msgf("lexparsegen: reading -lex: %v", err)
			return err
		}
		lexText = text

		text, err = readFile(opts.GrammarFile)
		if err != nil {
			gologger.Error().Msgf("lexparsegen: reading -grammar: %v", err)
			return err
		}
		grammarText = text
	}

	lexDef, err := lexicaldef.Load(strings.NewReader(lexText))
	if err != nil {
		gologger.Error().Msgf("lexparsegen: parsing lexical definition: %v", err)
		return err
	}

	var dfa *automata.DFA
	if opts.DFAIn != "" {
		f, err := os.Open(opts.DFAIn)
		if err != nil {
			gologger.Error().Msgf("lexparsegen: opening -dfa-in: %v", err)
			return err
		}
		defer f.Close()
		dfa, err = dfaio.Read(f)
		if err != nil {
			gologger.Error().Msgf("lexparsegen: reading persisted DFA: %v", err)
			return err
		}
	} else {
		dfa, err = lexDef.CompileDFAOnly()
		if err != nil {
			gologger.Error().Msgf("lexparsegen: compiling lexical definition: %v", err)
			return err
		}
	}

	if opts.DFAOut != "" {
		f, err := os.Create(opts.DFAOut)
		if err != nil {
			gologger.Error().Msgf("lexparsegen: creating -dfa-out: %v", err)
			return err
		}
		err = dfaio.Write(f, dfa)
		f.Close()
		if err != nil {
			gologger.Error().Msgf("lexparsegen: writing persisted DFA: %v", err)
			return err
		}
	}

	lex := scanner.New(dfa, lexDef.IgnoreSet(), lexDef.Reserved, "ID", "NUM")

	g, err := grammar.GrammarFromText(grammarText)
	if err != nil {
		gologger.Error().Msgf("lexparsegen: parsing grammar: %v", err)
		return err
	}

	collection := lr0.Build(g)
	sets := firstfollow.Compute(g)

	if opts.Debug {
		firstfollow.FprintFirstSets(w, g, sets.First)
		firstfollow.FprintFollowSets(w, g, sets.Follow)
		lr0.Fprint(w, g, collection)
	}

	table, err := slrtable.BuildTable(g, collection, sets.Follow)
	if err != nil {
		gologger.Error().Msgf("lexparsegen: building SLR table: %v", err)
		return err
	}

	if opts.Debug {
		slrtable.Fprint(w, table)
	}

	var input []parsedriver.InputToken
	switch {
	case opts.TokensFile != "":
		f, err := os.Open(opts.TokensFile)
		if err != nil {
			gologger.Error().Msgf("lexparsegen: opening -tokens: %v", err)
			return err
		}
		defer f.Close()
		input, err = tokenio.ReadInput(f)
		if err != nil {
			gologger.Error().Msgf("lexparsegen: reading token stream: %v", err)
			return err
		}

	default:
		sourceText := "x1 + 42 * (y2)"
		if !opts.Demo {
			sourceText, err = readFile(opts.SourceFile)
			if err != nil {
				gologger.Error().Msgf("lexparsegen: reading -source: %v", err)
				return err
			}
		}
		tokens, symbols := lex.Tokenize(sourceText)
		if opts.Debug {
			fmt.Fprint(w, symbols.String())
		}
		for _, tok := range tokens {
			if tok.Kind == scanner.ErrorKind {
				gologger.Warning().Msgf("lexparsegen: unrecognized character %q at line %d col %d", tok.Lexeme, tok.Line, tok.Column)
				continue
			}
			input = append(input, parsedriver.InputToken{
				Symbol:    grammar.Symbol(tok.Kind),
				Lexeme:    tok.Lexeme,
				Attribute: tok.Attribute,
			})
		}
	}

	driver := parsedriver.New(table, g)
	tree, steps, err := driver.Parse(input)
	if err != nil {
		gologger.Error().Msgf("lexparsegen: parse failed: %v", err)
		return err
	}

	if opts.Trace {
		for _, step := range steps {
			fmt.Fprintf(w, "stack=%v input=%v action=%s\n", step.Stack, step.RemainingInput, step.Action)
		}
	}

	parsetree.Fprint(w, tree)
	gologger.Info().Msgf("lexparsegen: parse accepted")
	return nil
}
