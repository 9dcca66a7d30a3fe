/*
zparse is a console utility translating a grammar description to a
lexer description dump.
Usage is

	zparse [-j] [-m] [-o <name>] <file>

-j flag instructs zparse to output JSON instead of a plain text report;

-m flag allows multi-character implicit tokens in rule bodies;

-o <name> defines output file name, default is standard output;

<file> defines grammar definition file parsable by langdef.Parse().
*/
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/hadrian-reppas/zparse/grammar"
	"github.com/hadrian-reppas/zparse/langdef"
)

var (
	generateJson, allowMultiChar bool
	inFileName, outFileName      string
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  zparse [-j] [-m] [-o <name>] <file>")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <file>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tgrammar definition file name")
	}

	flag.BoolVar(&generateJson, "j", false, "output JSON instead of a text report")
	flag.BoolVar(&allowMultiChar, "m", false, "allow multi-character implicit tokens")
	flag.StringVar(&outFileName, "o", "", "output file name, default is stdout")
	flag.Parse()
	inFileName = flag.Arg(0)
	if inFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	var gr *grammar.Grammar
	var lex *grammar.LexerDescription
	src, e := os.ReadFile(inFileName)
	if e == nil {
		gr, e = langdef.ParseBytes(inFileName, src)
	}
	if e == nil {
		lex, e = langdef.Synthesize(gr, allowMultiChar)
	}
	var content []byte
	if e == nil {
		if generateJson {
			content, e = makeJson(gr, lex)
		} else {
			content = makeReport(gr, lex)
		}
	}
	if e == nil {
		if outFileName == "" {
			_, e = os.Stdout.Write(content)
		} else {
			e = os.WriteFile(outFileName, content, 0o666)
		}
	}

	if e != nil {
		fmt.Println(e.Error())
		os.Exit(3)
	}
}

type tokenEntryJson struct {
	Name      string `json:"name"`
	Regex     string `json:"regex"`
	Tag       string `json:"tag,omitempty"`
	Predicate string `json:"predicate,omitempty"`
}

type ruleJson struct {
	Name         string   `json:"name"`
	Alternatives int      `json:"alternatives"`
	Tags         []string `json:"tags,omitempty"`
}

type dumpJson struct {
	Rules        []ruleJson       `json:"rules"`
	Fragments    []string         `json:"fragments"`
	Declarations []string         `json:"declarations,omitempty"`
	Tokens       []tokenEntryJson `json:"tokens"`
}

func makeDump(gr *grammar.Grammar, lex *grammar.LexerDescription) dumpJson {
	var dump dumpJson
	for _, r := range gr.RuleDefinitions {
		rule := ruleJson{Name: r.Name.Name, Alternatives: len(r.Alternatives)}
		for _, alt := range r.Alternatives {
			if alt.Tag != nil {
				rule.Tags = append(rule.Tags, alt.Tag.Name.Name)
			}
		}
		dump.Rules = append(dump.Rules, rule)
	}
	for _, f := range gr.FragmentDefinitions {
		dump.Fragments = append(dump.Fragments, f.Name.Name)
	}
	for _, d := range gr.TokenDeclarations {
		dump.Declarations = append(dump.Declarations, d.Name.Name)
	}
	for _, entry := range lex.Entries {
		dump.Tokens = append(dump.Tokens, tokenEntryJson{
			Name:      entry.Name,
			Regex:     entry.RegexSource,
			Tag:       entry.TagHook,
			Predicate: entry.Predicate,
		})
	}
	return dump
}

func makeJson(gr *grammar.Grammar, lex *grammar.LexerDescription) ([]byte, error) {
	return json.MarshalIndent(makeDump(gr, lex), "", "  ")
}

func makeReport(gr *grammar.Grammar, lex *grammar.LexerDescription) []byte {
	dump := makeDump(gr, lex)
	var buffer bytes.Buffer

	buffer.WriteString("rules:\n")
	for _, r := range dump.Rules {
		fmt.Fprintf(&buffer, "  %s (%d alternatives", r.Name, r.Alternatives)
		if len(r.Tags) > 0 {
			fmt.Fprintf(&buffer, ", tags: %v", r.Tags)
		}
		buffer.WriteString(")\n")
	}

	buffer.WriteString("fragments:\n")
	for _, f := range dump.Fragments {
		fmt.Fprintf(&buffer, "  %s\n", f)
	}

	if len(dump.Declarations) > 0 {
		buffer.WriteString("declared tokens:\n")
		for _, d := range dump.Declarations {
			fmt.Fprintf(&buffer, "  %s\n", d)
		}
	}

	buffer.WriteString("tokens:\n")
	for _, entry := range dump.Tokens {
		fmt.Fprintf(&buffer, "  %s: /%s/", entry.Name, entry.Regex)
		if entry.Tag != "" {
			fmt.Fprintf(&buffer, " @%s", entry.Tag)
		}
		if entry.Predicate != "" {
			fmt.Fprintf(&buffer, " %s ?", entry.Predicate)
		}
		buffer.WriteByte('\n')
	}

	return buffer.Bytes()
}
