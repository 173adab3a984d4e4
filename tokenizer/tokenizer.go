// Package tokenizer is the public facade: build a lattice, decode it,
// and project the winning path onto a token sequence.
package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unicode/utf8"

	"github.com/nihongo/kanpyo/dict"
	"github.com/nihongo/kanpyo/lattice"
	"github.com/nihongo/kanpyo/token"
)

// EnvDictPath overrides the default dictionary location.
const EnvDictPath = "KANPYO_DICT_PATH"

// defaultDictName is the compiled archive LoadDefault looks for next to
// the tokenizer package when EnvDictPath is unset.
const defaultDictName = "ipadic.kpd"

// Tokenizer owns a loaded Dict and is safe to share read-only across
// concurrent Tokenize calls: the lattice and Viterbi DP arrays are
// allocated fresh per call and never retained.
type Tokenizer struct {
	Dict *dict.Dict
}

// New wraps an already-loaded Dict.
func New(d *dict.Dict) *Tokenizer {
	return &Tokenizer{Dict: d}
}

// LoadDefault resolves a dictionary path from EnvDictPath, falling back
// to a file named ipadic.kpd alongside this package, and loads it.
func LoadDefault() (*Tokenizer, error) {
	dictPath := os.Getenv(EnvDictPath)
	if dictPath == "" {
		_, currentFile, _, ok := runtime.Caller(0)
		if !ok {
			return nil, errors.New("tokenizer: could not determine package directory for default dictionary lookup")
		}
		dictPath = filepath.Join(filepath.Dir(currentFile), defaultDictName)
	}

	if _, err := os.Stat(dictPath); err != nil {
		return nil, fmt.Errorf(
			"tokenizer: dictionary not found at %q; build one with the kanpyo build command or set %s: %w",
			dictPath, EnvDictPath, err,
		)
	}

	d, err := dict.Load(dictPath)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: load dictionary: %w", err)
	}
	return New(d), nil
}

// Tokenize builds the lattice for input, decodes the minimum-cost path,
// and projects it onto a token sequence.
func (t *Tokenizer) Tokenize(input string) []token.Token {
	l := lattice.Build(t.Dict, input)
	nodes := l.Viterbi()

	tokens := make([]token.Token, len(nodes))
	for i, n := range nodes {
		tokens[i] = project(n)
	}
	return tokens
}

func project(n lattice.Node) token.Token {
	switch n.Class() {
	case lattice.Dummy:
		return token.Token{
			Class:        token.Dummy,
			BytePosition: n.BytePos(),
			CharStart:    n.CharPos(),
			CharEnd:      n.CharPos() + 3,
			Surface:      "EOS",
		}
	case lattice.Unknown:
		return token.Token{
			ID:           int32(n.ID()),
			Class:        token.Unknown,
			BytePosition: n.BytePos(),
			CharStart:    n.CharPos(),
			CharEnd:      n.CharPos() + utf8.RuneCountInString(n.Surface()),
			Surface:      n.Surface(),
		}
	default:
		return token.Token{
			ID:           int32(n.ID()),
			Class:        token.Known,
			BytePosition: n.BytePos(),
			CharStart:    n.CharPos(),
			CharEnd:      n.CharPos() + utf8.RuneCountInString(n.Surface()),
			Surface:      n.Surface(),
		}
	}
}

// TokenizeList tokenizes inputs concurrently across a worker pool,
// mirroring the dispatcher/worker/collector channel pattern used for
// batch analysis, adapted to preserve each input's position in the
// result slice (batch tokenization needs document order, unlike a
// dictionary lookup that can re-sort freely).
func (t *Tokenizer) TokenizeList(inputs []string) [][]token.Token {
	numWorkers := runtime.NumCPU()
	if numWorkers > len(inputs) {
		numWorkers = len(inputs)
	}
	if numWorkers == 0 {
		return nil
	}

	type job struct {
		index int
		text  string
	}
	type outcome struct {
		index  int
		tokens []token.Token
	}

	jobsCh := make(chan job, numWorkers)
	resultCh := make(chan outcome, numWorkers)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobsCh {
				resultCh <- outcome{index: j.index, tokens: t.Tokenize(j.text)}
			}
		}()
	}

	go func() {
		for i, text := range inputs {
			jobsCh <- job{index: i, text: text}
		}
		close(jobsCh)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([][]token.Token, len(inputs))
	for r := range resultCh {
		results[r.index] = r.tokens
	}
	return results
}
