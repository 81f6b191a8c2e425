package model

// Passage is one payload record returned by the retrieval layer. Keys are
// free-form and depend on the collection (docs carry title/detail, products
// carry product_id/name/category/detail).
type Passage map[string]string

// Document is a knowledge-base record as stored by the ingestion job:
// the payload plus the embedding of its flattened text.
type Document struct {
	Collection string
	Payload    Passage
	Embedding  []float32
}
