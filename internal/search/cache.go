package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jonathan/leadgen/internal/types"
)

// CacheKeyPrefix namespaces cached pages in a shared store.
const CacheKeyPrefix = "leadgen:page:"

// PageCache stores successfully fetched pages for a short time.
// Implementations swallow their own errors; a miss is always safe.
type PageCache interface {
	Get(ctx context.Context, key string) (*types.ResultPage, bool)
	Set(ctx context.Context, key string, page *types.ResultPage)
}

// CacheKey derives the cache key for a request. The API key is left out so
// rotating credentials does not change the key.
func CacheKey(p types.Platform, req Request) string {
	raw := fmt.Sprintf("%s|%s|%s|%d|%d|%t", p, req.EngineID, req.Query, req.Start, req.Num, req.ImageSearch)
	sum := sha256.Sum256([]byte(raw))
	return CacheKeyPrefix + hex.EncodeToString(sum[:])
}
