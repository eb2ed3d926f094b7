// Package similarity ranks books by the textual similarity of their
// descriptions.
//
// Each description becomes a bag-of-words count vector over the vocabulary of
// the whole corpus, and books are compared with cosine similarity:
//
//	sim(a, b) = dot(a, b) / (|a| * |b|)
//
// which is 0 when either vector is all zeros. Nothing is cached; every call to
// Engine.Rank vectorizes the corpus it is given.
//
// Tokenization lowercases the text and keeps maximal runs of two or more
// letters, digits or underscores. Single-character words ("a", the "s" of
// "hobbit's") are dropped, there is no stopword list and no stemming.
package similarity
