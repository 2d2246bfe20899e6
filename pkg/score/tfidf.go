package score

import "math"

// tfidfCorpus pre-computes per-document term frequencies and corpus-wide
// document frequencies over tokenized documents.
type tfidfCorpus struct {
	termFreqs []map[string]int
	docFreqs  map[string]int
	numDocs   int
}

// newTFIDFCorpus builds the corpus model from tokenized documents.
func newTFIDFCorpus(docs [][]string) *tfidfCorpus {
	c := &tfidfCorpus{
		termFreqs: make([]map[string]int, len(docs)),
		docFreqs:  make(map[string]int),
		numDocs:   len(docs),
	}
	for i, tokens := range docs {
		tf := make(map[string]int)
		for _, tok := range tokens {
			tf[tok]++
		}
		c.termFreqs[i] = tf
		for term := range tf {
			c.docFreqs[term]++
		}
	}
	return c
}

// idf returns the log-scaled inverse document frequency with add-one
// smoothing on the document frequency:
//
//	idf(t) = log(N / (1 + df(t))) + 1
//
// The +1 inside the log denominator prevents division by zero for unseen
// terms; the outer +1 keeps weights positive for terms present in every
// document. This matches the smoothing used by the original scoring layer
// and is pinned by TestTFIDFStability.
func (c *tfidfCorpus) idf(term string) float64 {
	return math.Log(float64(c.numDocs)/(1+float64(c.docFreqs[term]))) + 1
}

// aggregate sums tf(t,d) * idf(t) across all documents for every term,
// producing corpus-wide importance weights. Iteration order over documents
// is fixed, so aggregation is deterministic.
func (c *tfidfCorpus) aggregate() map[string]float64 {
	scores := make(map[string]float64, len(c.docFreqs))
	for _, tf := range c.termFreqs {
		for term, count := range tf {
			scores[term] += float64(count) * c.idf(term)
		}
	}
	return scores
}
