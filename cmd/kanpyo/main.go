// Command kanpyo builds a dictionary archive from MeCab IPA-dic source
// files and analyzes text against a compiled archive.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihongo/kanpyo/dict"
	"github.com/nihongo/kanpyo/dict/builder"
	"github.com/nihongo/kanpyo/token"
	"github.com/nihongo/kanpyo/tokenizer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "kanpyo:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kanpyo build --dict <source-dir> --out <archive> [--encoding euc-jp|utf-8]")
	fmt.Fprintln(os.Stderr, "       kanpyo analyze --dict <archive> [text]")
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	dictPath := fs.String("dict", "", "path to the IPA-dic source directory")
	outPath := fs.String("out", "", "path to write the compiled archive")
	encodingName := fs.String("encoding", "utf-8", "source encoding: euc-jp or utf-8")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dictPath == "" || *outPath == "" {
		return fmt.Errorf("--dict and --out are required")
	}

	cfg := builder.NewConfig(*dictPath, *encodingName)
	d, err := builder.Build(cfg)
	if err != nil {
		return fmt.Errorf("build dictionary: %w", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", *outPath, err)
	}
	defer out.Close()

	if err := d.Build(out); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	dictPath := fs.String("dict", "", "path to a compiled dictionary archive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dictPath == "" {
		return fmt.Errorf("--dict is required")
	}

	d, err := dict.Load(*dictPath)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	defer d.Close()

	var input string
	if fs.NArg() > 0 {
		input = strings.Join(fs.Args(), " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = strings.TrimRight(string(data), "\n")
	}

	tok := tokenizer.New(d)
	tokens := tok.Tokenize(input)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for _, tk := range tokens {
		if tk.Class == token.Dummy {
			fmt.Fprintln(out, "EOS")
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", tk.Surface, strings.Join(featuresFor(d, tk), ","))
	}
	return nil
}

func featuresFor(d *dict.Dict, tk token.Token) []string {
	var ids []uint32
	var names []string
	switch tk.Class {
	case token.Known:
		ids = d.MorphFeatures.Features[tk.ID-1]
		names = d.MorphFeatures.Names
	case token.Unknown:
		ids = d.Unk.Features.Features[tk.ID-1]
		names = d.Unk.Features.Names
	default:
		return nil
	}
	features := make([]string, len(ids))
	for i, id := range ids {
		features[i] = names[id]
	}
	return features
}
