package normalize

import (
	"net/url"
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

const (
	titleSeparator    = " - "
	profilePathMarker = "/in/"
	linkedInSuffix    = " | linkedin"
)

// professional handles "Name - Position - Company" titles from the professional network.
type professional struct {
	domain string
}

func (s professional) Normalize(raw RawResult) types.Profile {
	pageLink, imageLink := raw.Link, ""
	if raw.Image != nil && raw.Image.ContextLink != "" {
		// image-search results link to the image; the page is the context link
		pageLink, imageLink = raw.Image.ContextLink, raw.Link
	}

	p := baseProfile(raw)
	p.Link = s.canonicalLink(pageLink)
	p.FullName, p.CurrentPosition, p.Company = splitTitle(raw.Title)

	thumbnail := ""
	if raw.Image != nil {
		thumbnail = raw.Image.ThumbnailLink
	}
	p.ProfileImageURL = firstNonEmpty(
		raw.Pagemap.First("metatags", "og:image"),
		raw.Pagemap.First("cse_image", "src"),
		raw.Pagemap.First("imageobject", "url"),
		imageLink,
		thumbnail,
		DefaultProfileImageURL,
	)
	return p
}

// splitTitle splits "Jane Doe - Senior Engineer - Acme Corp" into its three parts.
// Segments after the third, such as a trailing location, are dropped.
func splitTitle(title string) (name, position, company string) {
	if strings.HasSuffix(strings.ToLower(title), linkedInSuffix) {
		title = title[:len(title)-len(linkedInSuffix)]
	}
	parts := strings.Split(title, titleSeparator)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		position = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		company = strings.TrimSpace(parts[2])
	}
	return name, position, company
}

// canonicalLink strips query and fragment and rewrites profile links, including
// country subdomains, to https://<domain>/in/<slug>.
func (s professional) canonicalLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	u, err := url.Parse(link)
	if err != nil {
		return beforeSep(beforeSep(link, "#"), "?")
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""

	path := u.EscapedPath()
	if i := strings.Index(path, profilePathMarker); i >= 0 {
		slug := strings.Trim(path[i+len(profilePathMarker):], "/")
		if slug != "" {
			return "https://" + s.domain + profilePathMarker + slug
		}
	}
	return u.String()
}
