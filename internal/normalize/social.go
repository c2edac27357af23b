package normalize

import (
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

const (
	handleSeparator    = " (@"
	pageTitleSeparator = " |"
)

// photoSharing handles "Name (@handle)" titles with a bio snippet.
type photoSharing struct{}

func (photoSharing) Normalize(raw RawResult) types.Profile {
	p := baseProfile(raw)
	p.FullName = strings.TrimSpace(beforeSep(raw.Title, handleSeparator))
	p.CurrentPosition = firstSentence(raw.Snippet)
	p.ProfileImageURL = raw.Pagemap.First("cse_image", "src")
	return p
}

// social handles microblogging and generic social network results.
type social struct {
	// pageTitleSuffix cuts " | Site" suffixes such as "Jane Doe | Facebook".
	pageTitleSuffix bool
}

func (s social) Normalize(raw RawResult) types.Profile {
	p := baseProfile(raw)
	name := beforeSep(raw.Title, handleSeparator)
	if s.pageTitleSuffix {
		name = beforeSep(name, pageTitleSeparator)
	}
	p.FullName = strings.TrimSpace(name)
	p.ProfileImageURL = raw.Pagemap.First("cse_image", "src")
	return p
}
