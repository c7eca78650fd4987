package ranking

import (
	"math"

	"github.com/ShreekarSeelavantula/career-compass/config"
	"github.com/ShreekarSeelavantula/career-compass/internal/tokenizer"
)

// CorpusStats exposes document frequencies for true-IDF scoring.
type CorpusStats interface {
	// DocumentCount is the number of documents in the corpus.
	DocumentCount() int
	// DocumentFrequency is the number of documents containing term at least once.
	DocumentFrequency(term string) int
}

// BM25Calculator scores a candidate text against a job text.
//
// It is a single-pair variant of BM25: the average document length is the
// mean of the two texts and, in pair mode, every matched term carries the
// binary-presence idf ln(2/(1+1)).
type BM25Calculator struct {
	K1        float64
	B         float64
	tokenizer *tokenizer.Tokenizer
	idfMode   string
	corpus    CorpusStats
}

// NewBM25Calculator creates a calculator from the BM25, token length and IDF settings.
func NewBM25Calculator(settings config.RankingSettings) *BM25Calculator {
	settings.ApplyDefaults()
	return &BM25Calculator{
		K1:        settings.BM25.K1,
		B:         settings.BM25.B,
		tokenizer: tokenizer.New(*settings.MinTokenLength),
		idfMode:   settings.IDFMode,
	}
}

// withCorpus returns a copy that reads document frequencies from stats.
func (calc *BM25Calculator) withCorpus(stats CorpusStats) *BM25Calculator {
	clone := *calc
	clone.corpus = stats
	return &clone
}

// Tokenizer returns the tokenizer used for both texts.
func (calc *BM25Calculator) Tokenizer() *tokenizer.Tokenizer {
	return calc.tokenizer
}

// LexicalScore returns a relevance score in [0, 1].
func (calc *BM25Calculator) LexicalScore(candidateText, jobText string) float64 {
	if candidateText == "" || jobText == "" {
		return 0
	}

	candidateTokens := calc.tokenizer.Tokenize(candidateText)
	jobTokens := calc.tokenizer.Tokenize(jobText)
	if len(candidateTokens) == 0 || len(jobTokens) == 0 {
		return 0
	}

	termFreqs := tokenizer.TermFrequencies(candidateTokens)
	candidateLen := float64(len(candidateTokens))
	avgDocLength := (candidateLen + float64(len(jobTokens))) / 2

	score := 0.0
	for _, term := range tokenizer.UniqueTerms(jobTokens) {
		tf := float64(termFreqs[term])
		if tf <= 0 {
			continue
		}
		idf := calc.calculateIDF(term)
		score += idf * (tf * (calc.K1 + 1)) / (tf + calc.K1*(1-calc.B+calc.B*(candidateLen/avgDocLength)))
	}

	normalized := score / (float64(len(jobTokens)) * 2)
	return math.Max(0, math.Min(1, normalized))
}

// calculateIDF returns the inverse document frequency for a matched term.
func (calc *BM25Calculator) calculateIDF(term string) float64 {
	if calc.idfMode != config.IDFModeCorpus || calc.corpus == nil {
		// Two documents in the pair, term present in one plus smoothing.
		return math.Log(2.0 / (1 + 1))
	}

	// IDF = log(N / df) where N = total documents, df = documents containing term
	totalDocs := float64(calc.corpus.DocumentCount())
	if totalDocs == 0 {
		return 0
	}
	docFreq := calc.corpus.DocumentFrequency(term)
	if docFreq == 0 {
		return 0
	}
	return math.Log(totalDocs / float64(docFreq))
}
