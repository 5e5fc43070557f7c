package postgres

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/lib/pq"
	"github.com/w-h-a/medrag/storer"
)

const registrySchema = `
	CREATE EXTENSION IF NOT EXISTS vector;
	CREATE TABLE IF NOT EXISTS vector_collections (
		name       TEXT PRIMARY KEY,
		dimension  INTEGER NOT NULL,
		metric     TEXT NOT NULL,
		table_name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

var unsafeChars = regexp.MustCompile(`[^a-z0-9_]+`)

const maxReadable = 24

// tableName maps a collection name onto the table holding its records. The
// readable part is lossy, so a hash of the exact name keeps tables apart.
func tableName(collection string) string {
	readable := unsafeChars.ReplaceAllString(strings.ToLower(collection), "_")
	if len(readable) > maxReadable {
		readable = readable[:maxReadable]
	}
	return fmt.Sprintf("collection_%s_%016x", readable, xxhash.Sum64String(collection))
}

func collectionSchema(name string, dimension int, metric storer.Metric) []string {
	table := tableName(name)
	return []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         BIGSERIAL PRIMARY KEY,
				embedding  vector(%d) NOT NULL,
				text       TEXT NOT NULL,
				source     TEXT NOT NULL,
				metadata   JSONB NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL
			)
		`, pq.QuoteIdentifier(table), dimension),
		fmt.Sprintf(
			`CREATE INDEX IF NOT EXISTS %s ON %s USING hnsw (embedding %s)`,
			pq.QuoteIdentifier(table+"_idx"),
			pq.QuoteIdentifier(table),
			opsClass(metric),
		),
	}
}

// distanceExpr is lower-is-nearer for every metric, matching storer.Metric.Distance.
func distanceExpr(metric storer.Metric) string {
	switch metric {
	case storer.DotProduct:
		return "(embedding <#> $1)"
	case storer.Euclidean:
		return "(embedding <-> $1)"
	default:
		return "(embedding <=> $1)"
	}
}

func opsClass(metric storer.Metric) string {
	switch metric {
	case storer.DotProduct:
		return "vector_ip_ops"
	case storer.Euclidean:
		return "vector_l2_ops"
	default:
		return "vector_cosine_ops"
	}
}
