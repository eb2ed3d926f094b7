package similarity

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when no document contains a single token.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain no tokens")

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize splits text into lowercase terms.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// CountMatrix holds one raw term-count vector per document, indexed by
// Vocabulary.
type CountMatrix struct {
	Vocabulary []string
	Rows       [][]float64
}

// CountVectorizer turns documents into bag-of-words count vectors.
type CountVectorizer struct {
	Tokenizer func(string) []string
}

func NewCountVectorizer() *CountVectorizer {
	return &CountVectorizer{Tokenizer: Tokenize}
}

// FitTransform learns the vocabulary of docs, sorted alphabetically, and
// returns their count vectors in input order.
func (v *CountVectorizer) FitTransform(docs []string) (*CountMatrix, error) {
	tokenize := v.Tokenizer
	if tokenize == nil {
		tokenize = Tokenize
	}

	tokenized := make([][]string, len(docs))
	seen := make(map[string]struct{})
	for i, doc := range docs {
		tokenized[i] = tokenize(doc)
		for _, term := range tokenized[i] {
			seen[term] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(seen))
	for term := range seen {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	rows := make([][]float64, len(docs))
	for i, terms := range tokenized {
		row := make([]float64, len(vocab))
		for _, term := range terms {
			row[index[term]]++
		}
		rows[i] = row
	}

	return &CountMatrix{Vocabulary: vocab, Rows: rows}, nil
}
