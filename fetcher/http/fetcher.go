package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/w-h-a/medrag/fetcher"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpFetcher struct {
	options fetcher.Options
	client  *http.Client
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", fetcher.ErrFetch, err)
	}

	req.Header.Set("User-Agent", f.options.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9")

	rsp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", fetcher.ErrFetch, err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s returned %s", fetcher.ErrFetch, url, rsp.Status)
	}

	body := io.LimitReader(rsp.Body, f.options.MaxBytes)

	var text string
	if strings.HasPrefix(rsp.Header.Get("Content-Type"), "text/plain") {
		raw, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("%w: %w", fetcher.ErrFetch, err)
		}
		text = collapse(string(raw))
	} else {
		text, err = StripMarkup(body)
		if err != nil {
			return "", fmt.Errorf("%w: %w", fetcher.ErrFetch, err)
		}
	}

	if len(strings.TrimSpace(text)) == 0 {
		return "", fmt.Errorf("%w: %s has no content", fetcher.ErrFetch, url)
	}

	return text, nil
}

func NewFetcher(opts ...fetcher.Option) fetcher.Fetcher {
	options := fetcher.NewOptions(opts...)

	f := &httpFetcher{
		options: options,
		client: &http.Client{
			Timeout:   options.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	return f
}
