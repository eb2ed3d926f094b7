package similarity

import (
	"errors"
	"fmt"
	"sort"

	"bookreco-backend/models/books"
)

// DefaultLimit is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultLimit = 5

// ErrNotFound is returned when the target book is not part of the corpus.
var ErrNotFound = errors.New("target book not in corpus")

// Scored is a ranked book with its similarity to the target.
type Scored struct {
	Book  books.Book
	Score float64
}

// Ranker ranks the books of a corpus against one of its members.
type Ranker interface {
	Rank(targetID uint, corpus []books.Book, limit int) ([]Scored, error)
}

// Engine is the count-vector/cosine Ranker.
type Engine struct {
	vectorizer *CountVectorizer
}

func NewEngine() *Engine {
	return &Engine{vectorizer: NewCountVectorizer()}
}

// Rank returns up to limit books of corpus, most similar to the book with
// targetID first, never including the target itself. Books with equal
// scores keep their corpus order. A limit <= 0 means DefaultLimit.
func (e *Engine) Rank(targetID uint, corpus []books.Book, limit int) ([]Scored, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	target := -1
	for i, b := range corpus {
		if b.ID == targetID {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("book %d: %w", targetID, ErrNotFound)
	}

	docs := make([]string, len(corpus))
	for i, b := range corpus {
		docs[i] = b.Description
	}
	counts, err := e.vectorizer.FitTransform(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize descriptions: %w", err)
	}
	row := CosineMatrix(counts)[target]

	ranked := make([]Scored, 0, len(corpus)-1)
	for i, b := range corpus {
		if i == target {
			continue
		}
		ranked = append(ranked, Scored{Book: b, Score: row[i]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
