package indexing

const (
	// CharsPerToken is the approximation for token estimation
	CharsPerToken = 4

	// BatchSize is the number of documents submitted per index batch
	BatchSize = 100

	// MaxKeywords caps the keywords stored per document
	MaxKeywords = 12

	// IndexSchemaVersion increments when the document shape changes
	// v1: field docs built from the embedded schema
	IndexSchemaVersion = 1
)
