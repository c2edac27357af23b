// Package normalize maps raw search results onto canonical profiles.
//
// Each platform family has its own Strategy. Strategies never fail: missing or
// malformed input resolves to the profile defaults.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

// DefaultProfileImageURL is shown for professional-network results without any image metadata.
const DefaultProfileImageURL = "https://static.licdn.com/aero-v1/sc/h/9c8pery4andzj6ohjkjp54ma2"

// Pagemap is the structured page metadata attached to a search result,
// e.g. {"metatags": [{"og:image": "..."}], "cse_image": [{"src": "..."}]}.
type Pagemap map[string][]map[string]any

// ImageInfo is present on results returned in image-search mode.
type ImageInfo struct {
	ContextLink   string
	ThumbnailLink string
}

// RawResult is one untyped record from the search API.
type RawResult struct {
	Title   string
	Link    string
	Snippet string
	Pagemap Pagemap
	Image   *ImageInfo
}

// Strategy converts raw results for one platform family.
type Strategy interface {
	Normalize(raw RawResult) types.Profile
}

// For returns the strategy for the platform.
func For(p types.Platform) Strategy {
	switch p.Kind() {
	case types.KindProfessional:
		return professional{domain: "www." + p.Domain()}
	case types.KindPhotoSharing:
		return photoSharing{}
	case types.KindMicroblogging:
		return social{}
	default:
		return social{pageTitleSuffix: true}
	}
}

// All normalizes every raw result with s, preserving order.
func All(s Strategy, raws []RawResult) []types.Profile {
	out := make([]types.Profile, 0, len(raws))
	for _, raw := range raws {
		out = append(out, s.Normalize(raw))
	}
	return out
}

// DecodePagemap parses pagemap JSON. Anything that does not decode yields nil.
func DecodePagemap(data []byte) Pagemap {
	if len(data) == 0 {
		return nil
	}
	var pm Pagemap
	if err := json.Unmarshal(data, &pm); err != nil {
		return nil
	}
	return pm
}

// First returns the string value of key in the first entry of the named pagemap section.
func (pm Pagemap) First(section, key string) string {
	entries := pm[section]
	if len(entries) == 0 || entries[0] == nil {
		return ""
	}
	s, _ := entries[0][key].(string)
	return strings.TrimSpace(s)
}

// baseProfile fills the fields every platform copies straight from the raw result.
func baseProfile(raw RawResult) types.Profile {
	p := types.NewProfile()
	p.Title = raw.Title
	p.Link = raw.Link
	p.Snippet = raw.Snippet
	p.About = raw.Snippet
	return p
}

// beforeSep returns the text before the first occurrence of sep, or s when sep is absent.
func beforeSep(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

// firstSentence returns the text before the first period, trimmed.
func firstSentence(s string) string {
	return strings.TrimSpace(beforeSep(s, "."))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
