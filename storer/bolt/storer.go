package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/medrag/storer"
	"go.etcd.io/bbolt"
)

var bucketCollections = []byte("collections")

var errExists = errors.New("collection exists")

type collectionInfo struct {
	Dimension int           `json:"dimension"`
	Metric    storer.Metric `json:"metric"`
}

type boltRecord struct {
	Id        string         `json:"id"`
	Vector    []float32      `json:"vector"`
	Text      string         `json:"text"`
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type boltStorer struct {
	options storer.Options
	db      *bbolt.DB
}

func (s *boltStorer) CreateCollection(ctx context.Context, name string, dimension int, metric storer.Metric) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		registry := tx.Bucket(bucketCollections)
		if registry.Get([]byte(name)) != nil {
			return errExists
		}

		data, err := json.Marshal(collectionInfo{Dimension: dimension, Metric: metric})
		if err != nil {
			return err
		}

		if err := registry.Put([]byte(name), data); err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists(recordsBucket(name))
		return err
	})

	if errors.Is(err, errExists) {
		slog.InfoContext(ctx, "collection already exists", "collection", name)
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %w", storer.ErrStore, err)
	}

	return nil
}

func (s *boltStorer) Insert(ctx context.Context, name string, rec storer.Record) (string, error) {
	stored := boltRecord{
		Id:        uuid.New().String(),
		Vector:    rec.Vector,
		Text:      rec.Text,
		Source:    rec.Source,
		Timestamp: rec.Timestamp,
		Metadata:  rec.Metadata,
	}
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		info, err := lookup(tx, name)
		if err != nil {
			return err
		}

		if len(rec.Vector) != info.Dimension {
			return storer.DimensionMismatch(name, info.Dimension, len(rec.Vector))
		}

		b := tx.Bucket(recordsBucket(name))

		// the sequence key keeps cursor order equal to insertion order
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}

		return b.Put(sequenceKey(seq), data)
	})
	if err != nil {
		return "", wrap(err)
	}

	return stored.Id, nil
}

func (s *boltStorer) Search(ctx context.Context, name string, vector []float32, limit int) ([]storer.Record, error) {
	var candidates []storer.Record

	err := s.db.View(func(tx *bbolt.Tx) error {
		info, err := lookup(tx, name)
		if err != nil {
			return err
		}

		if len(vector) != info.Dimension {
			return storer.DimensionMismatch(name, info.Dimension, len(vector))
		}

		if limit < 1 {
			return nil
		}

		return tx.Bucket(recordsBucket(name)).ForEach(func(_, v []byte) error {
			var rec boltRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			candidates = append(candidates, storer.Record{
				Id:        rec.Id,
				Vector:    rec.Vector,
				Text:      rec.Text,
				Source:    rec.Source,
				Timestamp: rec.Timestamp,
				Metadata:  rec.Metadata,
				Distance:  info.Metric.Distance(vector, rec.Vector),
			})
			return nil
		})
	})
	if err != nil {
		return nil, wrap(err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	if candidates == nil {
		candidates = []storer.Record{}
	}

	return candidates, nil
}

func (s *boltStorer) Close() error {
	return s.db.Close()
}

func lookup(tx *bbolt.Tx, name string) (collectionInfo, error) {
	var info collectionInfo

	data := tx.Bucket(bucketCollections).Get([]byte(name))
	if data == nil {
		return info, storer.CollectionNotFound(name)
	}

	if err := json.Unmarshal(data, &info); err != nil {
		return info, err
	}

	return info, nil
}

func recordsBucket(name string) []byte {
	return []byte("records/" + name)
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func wrap(err error) error {
	if errors.Is(err, storer.ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %w", storer.ErrStore, err)
}

func NewStorer(opts ...storer.Option) storer.Storer {
	options := storer.NewOptions(opts...)

	if len(options.Location) == 0 {
		detail := "missing location for bolt storer"
		slog.ErrorContext(options.Context, detail)
		panic(detail)
	}

	db, err := bbolt.Open(options.Location, 0o600, &bbolt.Options{Timeout: options.Timeout})
	if err != nil {
		detail := "failed to open bolt storer"
		slog.ErrorContext(options.Context, detail, "error", err, "location", options.Location)
		panic(detail)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCollections)
		return err
	}); err != nil {
		db.Close()
		detail := "failed to initialize bolt storer"
		slog.ErrorContext(options.Context, detail, "error", err)
		panic(detail)
	}

	return &boltStorer{
		options: options,
		db:      db,
	}
}
