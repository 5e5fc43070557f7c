package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/medrag/storer"
	getsafe "github.com/w-h-a/medrag/util/get_safe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpError struct {
	code int
	body string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("qdrant http %d: %s", e.code, e.body)
}

type collectionInfo struct {
	dimension int
	metric    storer.Metric
}

type qdrantStorer struct {
	options storer.Options
	client  *http.Client
	cache   sync.Map // name -> collectionInfo
}

func (s *qdrantStorer) CreateCollection(ctx context.Context, name string, dimension int, metric storer.Metric) error {
	req := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": toDistance(metric),
		},
	}

	path := fmt.Sprintf("/collections/%s", url.PathEscape(name))

	var rsp qdrantEnvelope[json.RawMessage]

	err := s.do(ctx, http.MethodPut, path, req, &rsp)

	var herr *httpError
	if errors.As(err, &herr) && herr.code == http.StatusConflict {
		slog.InfoContext(ctx, "collection already exists", "collection", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", storer.ErrStore, err)
	}

	if !strings.EqualFold(rsp.Status.State, "ok") && len(rsp.Status.Error) > 0 {
		return fmt.Errorf("%w: %s", storer.ErrStore, rsp.Status.Error)
	}

	s.cache.Store(name, collectionInfo{dimension: dimension, metric: metric})

	return nil
}

func (s *qdrantStorer) Insert(ctx context.Context, name string, rec storer.Record) (string, error) {
	info, err := s.collection(ctx, name)
	if err != nil {
		return "", err
	}

	if len(rec.Vector) != info.dimension {
		return "", storer.DimensionMismatch(name, info.dimension, len(rec.Vector))
	}

	id := uuid.New().String()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	payload := map[string]any{
		"text":      rec.Text,
		"source":    rec.Source,
		"metadata":  rec.Metadata,
		"timestamp": ts.Format(time.RFC3339Nano),
	}

	point := map[string]any{
		"id":      id,
		"vector":  rec.Vector,
		"payload": payload,
	}

	req := map[string]any{
		"points": []map[string]any{point},
	}

	var rsp qdrantEnvelope[json.RawMessage]

	path := fmt.Sprintf("/collections/%s/points?wait=true", url.PathEscape(name))

	if err := s.do(ctx, http.MethodPut, path, req, &rsp); err != nil {
		return "", fmt.Errorf("%w: %w", storer.ErrStore, err)
	}

	if !strings.EqualFold(rsp.Status.State, "ok") && len(rsp.Status.Error) > 0 {
		return "", fmt.Errorf("%w: %s", storer.ErrStore, rsp.Status.Error)
	}

	return id, nil
}

func (s *qdrantStorer) Search(ctx context.Context, name string, vector []float32, limit int) ([]storer.Record, error) {
	info, err := s.collection(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(vector) != info.dimension {
		return nil, storer.DimensionMismatch(name, info.dimension, len(vector))
	}

	if limit < 1 {
		return []storer.Record{}, nil
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_vector":  true,
		"with_payload": true,
	}

	var rsp qdrantEnvelope[[]qdrantPointResult]

	path := fmt.Sprintf("/collections/%s/points/search", url.PathEscape(name))

	if err := s.do(ctx, http.MethodPost, path, req, &rsp); err != nil {
		return nil, fmt.Errorf("%w: %w", storer.ErrStore, err)
	}

	results := make([]storer.Record, 0, len(rsp.Result))

	for _, point := range rsp.Result {
		payload := point.Payload

		rec := storer.Record{
			Id:        point.Id,
			Vector:    point.Vector,
			Text:      getsafe.String(payload, "text"),
			Source:    getsafe.String(payload, "source"),
			Metadata:  getsafe.Metadata(payload, "metadata"),
			Timestamp: getsafe.Time(payload, "timestamp"),
			Distance:  toDistanceValue(info.metric, point.Score),
		}

		results = append(results, rec)
	}

	// qdrant makes no promise about equal scores; older records win ties
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Timestamp.Before(results[j].Timestamp)
	})

	return results, nil
}

func (s *qdrantStorer) collection(ctx context.Context, name string) (collectionInfo, error) {
	if v, ok := s.cache.Load(name); ok {
		return v.(collectionInfo), nil
	}

	path := fmt.Sprintf("/collections/%s", url.PathEscape(name))

	var rsp qdrantEnvelope[qdrantCollectionInfo]

	err := s.do(ctx, http.MethodGet, path, nil, &rsp)

	var herr *httpError
	if errors.As(err, &herr) && herr.code == http.StatusNotFound {
		return collectionInfo{}, storer.CollectionNotFound(name)
	}
	if err != nil {
		return collectionInfo{}, fmt.Errorf("%w: %w", storer.ErrStore, err)
	}

	vectors := rsp.Result.Config.Params.Vectors

	info := collectionInfo{
		dimension: vectors.Size,
		metric:    fromDistance(vectors.Distance),
	}

	s.cache.Store(name, info)

	return info, nil
}

func (s *qdrantStorer) do(ctx context.Context, method string, path string, req any, rsp any) error {
	u := s.options.Location + path
	var buf io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")

	if len(s.options.ApiKey) > 0 {
		request.Header.Set("api-key", s.options.ApiKey)
		request.Header.Set("Authorization", "Bearer "+s.options.ApiKey)
	}

	response, err := s.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return &httpError{code: response.StatusCode, body: string(payload)}
	}

	if rsp != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, rsp); err != nil {
			return err
		}
	}

	return nil
}

func toDistance(metric storer.Metric) string {
	switch metric {
	case storer.DotProduct:
		return "Dot"
	case storer.Euclidean:
		return "Euclid"
	default:
		return "Cosine"
	}
}

func fromDistance(distance string) storer.Metric {
	switch strings.ToLower(distance) {
	case "dot":
		return storer.DotProduct
	case "euclid":
		return storer.Euclidean
	default:
		return storer.Cosine
	}
}

// toDistanceValue converts a qdrant score into storer's lower-is-nearer distance.
func toDistanceValue(metric storer.Metric, score float64) float64 {
	switch metric {
	case storer.DotProduct:
		return -score
	case storer.Euclidean:
		return score
	default:
		return 1 - score
	}
}

func NewStorer(opts ...storer.Option) storer.Storer {
	options := storer.NewOptions(opts...)

	if len(options.Location) == 0 {
		panic("missing location for qdrant storer")
	}

	options.Location = strings.TrimRight(options.Location, "/")

	client := &http.Client{
		Timeout:   options.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	s := &qdrantStorer{
		options: options,
		client:  client,
	}

	return s
}
