package ranking

import (
	"math"
	"testing"

	"github.com/ShreekarSeelavantula/career-compass/config"
	"github.com/stretchr/testify/assert"
)

type fakeCorpus struct {
	docs int
	df   map[string]int
}

func (f fakeCorpus) DocumentCount() int                { return f.docs }
func (f fakeCorpus) DocumentFrequency(term string) int { return f.df[term] }

func TestBM25Calculator_EmptyInputs(t *testing.T) {
	calc := NewBM25Calculator(config.DefaultRankingSettings())

	tests := []struct {
		name      string
		candidate string
		job       string
	}{
		{"empty candidate", "", "anything goes here"},
		{"empty job", "anything goes here", ""},
		{"both empty", "", ""},
		{"candidate has only short tokens", "a b go", "golang developer"},
		{"job has only punctuation", "golang developer", "!!! ??"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0.0, calc.LexicalScore(tt.candidate, tt.job))
		})
	}
}

func TestBM25Calculator_PairModeIDFIsZero(t *testing.T) {
	calc := NewBM25Calculator(config.DefaultRankingSettings())

	// Every matched term carries ln(2/2) = 0, so even identical texts score 0.
	assert.Equal(t, 0.0, calc.LexicalScore("golang developer", "golang developer"))
	assert.Equal(t, 0.0, calc.calculateIDF("golang"))

	// Corpus stats are ignored outside corpus mode.
	withStats := calc.withCorpus(fakeCorpus{docs: 10, df: map[string]int{"golang": 1}})
	assert.Equal(t, 0.0, withStats.LexicalScore("golang developer", "golang developer"))
}

func TestBM25Calculator_CorpusMode(t *testing.T) {
	settings := config.DefaultRankingSettings()
	settings.IDFMode = config.IDFModeCorpus
	calc := NewBM25Calculator(settings).withCorpus(fakeCorpus{
		docs: 10,
		df:   map[string]int{"golang": 2, "engineer": 5},
	})

	// candidate tokens: golang golang python developer (4); job tokens: golang engineer (2)
	got := calc.LexicalScore("Golang, golang; Python developer", "golang engineer")

	k1, b := 1.5, 0.75
	avg := (4.0 + 2.0) / 2
	tf := 2.0
	want := math.Log(10.0/2.0) * (tf * (k1 + 1)) / (tf + k1*(1-b+b*(4/avg))) / (2 * 2)
	assert.InDelta(t, want, got, 1e-12)
}

func TestBM25Calculator_CorpusModeWithoutStats(t *testing.T) {
	settings := config.DefaultRankingSettings()
	settings.IDFMode = config.IDFModeCorpus
	calc := NewBM25Calculator(settings)

	assert.Equal(t, 0.0, calc.LexicalScore("golang developer", "golang developer"))

	empty := calc.withCorpus(fakeCorpus{})
	assert.Equal(t, 0.0, empty.LexicalScore("golang developer", "golang developer"))
}

func TestBM25Calculator_ScoreIsCappedAtOne(t *testing.T) {
	settings := config.DefaultRankingSettings()
	settings.IDFMode = config.IDFModeCorpus
	calc := NewBM25Calculator(settings).withCorpus(fakeCorpus{
		docs: 1_000_000,
		df:   map[string]int{"rust": 1},
	})

	got := calc.LexicalScore("rust rust rust rust rust", "rust")
	assert.Equal(t, 1.0, got)
}

func TestBM25Calculator_UsesConfiguredParameters(t *testing.T) {
	settings := config.DefaultRankingSettings()
	settings.BM25 = config.BM25Settings{K1: 2.0, B: 0.5}
	settings.MinTokenLength = config.TokenLength(0)
	calc := NewBM25Calculator(settings)

	assert.Equal(t, 2.0, calc.K1)
	assert.Equal(t, 0.5, calc.B)
	assert.Equal(t, []string{"go", "c"}, calc.Tokenizer().Tokenize("go c"))
}
