package ingest

// SourceReport counts what happened to one source during a run.
type SourceReport struct {
	Source     string
	Chunks     int
	Inserted   int
	Failed     int
	Duplicates int
	FetchError error
}

type Report struct {
	Sources []SourceReport
}

func (r Report) Inserted() int {
	n := 0
	for _, s := range r.Sources {
		n += s.Inserted
	}
	return n
}

func (r Report) Failed() int {
	n := 0
	for _, s := range r.Sources {
		n += s.Failed
	}
	return n
}

func (r Report) Skipped() []string {
	var out []string
	for _, s := range r.Sources {
		if s.FetchError != nil {
			out = append(out, s.Source)
		}
	}
	return out
}
