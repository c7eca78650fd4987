package index

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/ShreekarSeelavantula/career-compass/internal/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvertedIndex_PutAndFrequencies(t *testing.T) {
	ii := New(nil)
	ii.Put("c2", "golang kubernetes golang")
	ii.Put("c1", "golang python")
	ii.Put("c3", "java spring")

	assert.Equal(t, 3, ii.DocumentCount())
	assert.Equal(t, 2, ii.DocumentFrequency("golang"))
	assert.Equal(t, 1, ii.DocumentFrequency("kubernetes"))
	assert.Equal(t, 0, ii.DocumentFrequency("rust"))

	list := ii.Index["golang"]
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].DocID)
	assert.Equal(t, "c2", list[1].DocID)
	assert.Equal(t, 2, list[1].TermFreq)
}

func TestInvertedIndex_PutReplaces(t *testing.T) {
	ii := New(tokenizer.New(2))
	ii.Put("c1", "golang python")
	ii.Put("c1", "rust")

	assert.Equal(t, 1, ii.DocumentCount())
	assert.Equal(t, 0, ii.DocumentFrequency("golang"))
	assert.Equal(t, 1, ii.DocumentFrequency("rust"))
	_, exists := ii.Index["golang"]
	assert.False(t, exists)
}

func TestInvertedIndex_Remove(t *testing.T) {
	ii := New(nil)
	ii.Put("c1", "golang")
	ii.Put("c2", "golang")

	ii.Remove("c1")
	ii.Remove("missing")

	assert.Equal(t, 1, ii.DocumentCount())
	assert.Equal(t, 1, ii.DocumentFrequency("golang"))
}

func TestInvertedIndex_EmptyText(t *testing.T) {
	ii := New(nil)
	ii.Put("c1", "")

	assert.Equal(t, 1, ii.DocumentCount())
	assert.Empty(t, ii.Index)
}

func TestInvertedIndex_GobRoundTrip(t *testing.T) {
	ii := New(nil)
	ii.Put("c1", "golang python")

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(ii))

	restored := &InvertedIndex{}
	require.NoError(t, gob.NewDecoder(&buf).Decode(restored))

	assert.Equal(t, 1, restored.DocumentCount())
	assert.Equal(t, 1, restored.DocumentFrequency("python"))

	restored.Put("c2", "python")
	assert.Equal(t, 2, restored.DocumentFrequency("python"))
}
