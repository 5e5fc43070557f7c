package storer

import "time"

type Record struct {
	Id        string
	Vector    []float32
	Text      string
	Source    string
	Timestamp time.Time
	Metadata  map[string]any
	Distance  float64
}
