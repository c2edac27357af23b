package search

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/leadgen/internal/normalize"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultTimeout bounds a single Custom Search call.
const DefaultTimeout = 15 * time.Second

// CSEBackend queries the Google Custom Search JSON API.
// Credentials travel with each request, so one service serves every platform.
type CSEBackend struct {
	svc *customsearch.Service
}

// NewCSEBackend creates a Custom Search backend. A zero timeout uses DefaultTimeout.
// Extra options (e.g. option.WithEndpoint) are passed to the client.
func NewCSEBackend(ctx context.Context, timeout time.Duration, opts ...option.ClientOption) (*CSEBackend, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	clientOpts := append([]option.ClientOption{
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}, opts...)

	svc, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &CSEBackend{svc: svc}, nil
}

// Search runs one Custom Search list call.
func (b *CSEBackend) Search(ctx context.Context, req Request) (*Response, error) {
	if req.APIKey == "" || req.EngineID == "" {
		return nil, ErrEngineNotConfigured
	}

	call := b.svc.Cse.List().
		Cx(req.EngineID).
		Q(req.Query).
		Num(int64(req.Num)).
		Start(int64(req.Start)).
		Context(ctx)
	if req.ImageSearch {
		call = call.SearchType("image")
	}

	resp, err := call.Do(googleapi.QueryParameter("key", req.APIKey))
	if err != nil {
		return nil, fmt.Errorf("custom search request failed: %w", err)
	}

	return convertSearch(resp), nil
}

func convertSearch(resp *customsearch.Search) *Response {
	out := &Response{}
	if resp == nil {
		return out
	}
	if resp.SearchInformation != nil {
		if total, err := strconv.ParseInt(resp.SearchInformation.TotalResults, 10, 64); err == nil {
			out.TotalResults = total
		}
	}

	out.Items = make([]normalize.RawResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil {
			continue
		}
		raw := normalize.RawResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
			Pagemap: normalize.DecodePagemap(item.Pagemap),
		}
		if item.Image != nil {
			raw.Image = &normalize.ImageInfo{
				ContextLink:   item.Image.ContextLink,
				ThumbnailLink: item.Image.ThumbnailLink,
			}
		}
		out.Items = append(out.Items, raw)
	}
	return out
}
