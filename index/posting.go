package index

// PostingEntry records that a document contains a term.
type PostingEntry struct {
	DocID    string // Candidate or posting id
	TermFreq int    // Occurrences of the term in the document
}

// PostingList is the set of documents containing one term, ordered by DocID.
type PostingList []PostingEntry

// find returns the position of docID in the list and whether it is present.
func (pl PostingList) find(docID string) (int, bool) {
	lo, hi := 0, len(pl)
	for lo < hi {
		mid := (lo + hi) / 2
		if pl[mid].DocID < docID {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < len(pl) && pl[lo].DocID == docID
}
