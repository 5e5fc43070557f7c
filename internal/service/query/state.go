package query

// State is a step of a single query request.
type State int

const (
	Received State = iota
	EmbeddingQuery
	Retrieving
	Assembling
	Generating
	Responded
	Failed
)

func (s State) String() string {
	switch s {
	case Received:
		return "RECEIVED"
	case EmbeddingQuery:
		return "EMBEDDING_QUERY"
	case Retrieving:
		return "RETRIEVING"
	case Assembling:
		return "ASSEMBLING"
	case Generating:
		return "GENERATING"
	case Responded:
		return "RESPONDED"
	default:
		return "FAILED"
	}
}
