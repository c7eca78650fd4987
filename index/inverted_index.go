// Package index keeps document frequencies for the corpus-IDF lexical mode.
package index

import (
	"bytes"
	"encoding/gob"
	"sync"

	"github.com/ShreekarSeelavantula/career-compass/internal/tokenizer"
)

// InvertedIndex maps a term to the documents containing it.
// It satisfies ranking.CorpusStats.
type InvertedIndex struct {
	Mu        sync.RWMutex
	Index     map[string]PostingList
	DocTerms  map[string][]string // doc id -> unique terms, for removal
	tokenizer *tokenizer.Tokenizer
}

// New creates an empty index that tokenizes with tok.
func New(tok *tokenizer.Tokenizer) *InvertedIndex {
	if tok == nil {
		tok = tokenizer.New(tokenizer.DefaultMinTokenLength)
	}
	return &InvertedIndex{
		Index:     make(map[string]PostingList),
		DocTerms:  make(map[string][]string),
		tokenizer: tok,
	}
}

// Put indexes text under docID, replacing whatever was indexed for it before.
func (ii *InvertedIndex) Put(docID, text string) {
	tokens := ii.tokenizer.Tokenize(text)
	freqs := tokenizer.TermFrequencies(tokens)
	terms := tokenizer.UniqueTerms(tokens)

	ii.Mu.Lock()
	defer ii.Mu.Unlock()

	ii.removeLocked(docID)
	for _, term := range terms {
		list := ii.Index[term]
		pos, _ := list.find(docID)
		list = append(list, PostingEntry{})
		copy(list[pos+1:], list[pos:])
		list[pos] = PostingEntry{DocID: docID, TermFreq: freqs[term]}
		ii.Index[term] = list
	}
	ii.DocTerms[docID] = terms
}

// Remove drops docID from the index. Unknown ids are ignored.
func (ii *InvertedIndex) Remove(docID string) {
	ii.Mu.Lock()
	defer ii.Mu.Unlock()
	ii.removeLocked(docID)
}

func (ii *InvertedIndex) removeLocked(docID string) {
	terms, ok := ii.DocTerms[docID]
	if !ok {
		return
	}
	for _, term := range terms {
		list := ii.Index[term]
		if pos, found := list.find(docID); found {
			list = append(list[:pos], list[pos+1:]...)
		}
		if len(list) == 0 {
			delete(ii.Index, term)
		} else {
			ii.Index[term] = list
		}
	}
	delete(ii.DocTerms, docID)
}

// DocumentCount returns the number of indexed documents.
func (ii *InvertedIndex) DocumentCount() int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	return len(ii.DocTerms)
}

// DocumentFrequency returns the number of documents containing term.
func (ii *InvertedIndex) DocumentFrequency(term string) int {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()
	return len(ii.Index[term])
}

// gobInvertedIndexData is a helper struct for Gob encoding/decoding InvertedIndex data.
// It excludes the mutex and tokenizer.
type gobInvertedIndexData struct {
	Index    map[string]PostingList
	DocTerms map[string][]string
}

// GobEncode implements the gob.GobEncoder interface for InvertedIndex.
func (ii *InvertedIndex) GobEncode() ([]byte, error) {
	ii.Mu.RLock()
	defer ii.Mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobInvertedIndexData{Index: ii.Index, DocTerms: ii.DocTerms}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for InvertedIndex.
func (ii *InvertedIndex) GobDecode(data []byte) error {
	decoded := gobInvertedIndexData{}
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&decoded); err != nil {
		return err
	}

	ii.Mu.Lock()
	defer ii.Mu.Unlock()

	ii.Index = decoded.Index
	ii.DocTerms = decoded.DocTerms
	if ii.Index == nil {
		ii.Index = make(map[string]PostingList)
	}
	if ii.DocTerms == nil {
		ii.DocTerms = make(map[string][]string)
	}
	if ii.tokenizer == nil {
		ii.tokenizer = tokenizer.New(tokenizer.DefaultMinTokenLength)
	}
	return nil
}
