package tokenizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMinTokenLength is the length a token must exceed to be kept.
const DefaultMinTokenLength = 2

// punctuationRegex matches every character that is not a word character or whitespace.
var punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Tokenizer normalizes free text into lexical tokens.
// The zero value drops nothing by length; use New for the usual configuration.
type Tokenizer struct {
	minTokenLength int
}

// New creates a Tokenizer that drops tokens whose length is <= minTokenLength.
// Negative values are treated as zero.
func New(minTokenLength int) *Tokenizer {
	if minTokenLength < 0 {
		minTokenLength = 0
	}
	return &Tokenizer{minTokenLength: minTokenLength}
}

// MinTokenLength returns the configured length threshold.
func (t *Tokenizer) MinTokenLength() int {
	return t.minTokenLength
}

// Tokenize lowercases the text, replaces punctuation with spaces and splits on whitespace.
// Token order is preserved and duplicates are kept, since term frequency matters downstream.
func (t *Tokenizer) Tokenize(text string) []string {
	tokens := make([]string, 0) // empty, never nil
	if text == "" {
		return tokens
	}

	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(text), " ")
	for _, field := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(field) > t.minTokenLength {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

var defaultTokenizer = New(DefaultMinTokenLength)

// Tokenize tokenizes text with the default minimum token length.
func Tokenize(text string) []string {
	return defaultTokenizer.Tokenize(text)
}

// TermFrequencies counts occurrences of each token.
func TermFrequencies(tokens []string) map[string]int {
	freqs := make(map[string]int, len(tokens))
	for _, token := range tokens {
		freqs[token]++
	}
	return freqs
}

// UniqueTerms returns the distinct tokens in first-occurrence order.
func UniqueTerms(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}
	return unique
}
