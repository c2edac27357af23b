// Package search issues platform-scoped web searches and returns normalized result pages.
package search

import (
	"context"

	"github.com/jonathan/leadgen/internal/normalize"
)

// Request is one call to the external search API.
type Request struct {
	APIKey      string
	EngineID    string
	Query       string
	Num         int // results per page
	Start       int // 1-based offset of the first result
	ImageSearch bool
}

// Response is the part of the search API response the gateway uses.
type Response struct {
	TotalResults int64 // the API's estimate, uncapped
	Items        []normalize.RawResult
}

// Backend performs search requests against an external search API.
type Backend interface {
	Search(ctx context.Context, req Request) (*Response, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, req Request) (*Response, error)

// Search calls f.
func (f BackendFunc) Search(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
