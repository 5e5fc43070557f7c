package chunker

// Chunker splits text into ordered, overlapping segments.
type Chunker interface {
	Split(text string) []string
}
