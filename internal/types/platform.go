// Package types provides type definitions for structured data used throughout the leadgen system.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPlatform is returned when a platform identifier is not one of the supported platforms.
var ErrUnknownPlatform = errors.New("unknown platform")

// Platform identifies the social platform a search is scoped to.
type Platform string

const (
	// PlatformLinkedIn is the professional network
	PlatformLinkedIn Platform = "linkedin"
	// PlatformInstagram is the photo-sharing network
	PlatformInstagram Platform = "instagram"
	// PlatformTwitter is the microblogging network
	PlatformTwitter Platform = "twitter"
	// PlatformFacebook is the generic social network
	PlatformFacebook Platform = "facebook"
)

// PlatformKind groups platforms that share normalization rules.
type PlatformKind int

const (
	KindProfessional PlatformKind = iota
	KindPhotoSharing
	KindMicroblogging
	KindGenericSocial
)

type platformInfo struct {
	kind        PlatformKind
	displayName string
	domain      string
	siteTerm    string
	showImage   bool
}

var platforms = map[Platform]platformInfo{
	PlatformLinkedIn: {
		kind:        KindProfessional,
		displayName: "LinkedIn",
		domain:      "linkedin.com",
		siteTerm:    "site:linkedin.com/in/",
		showImage:   true,
	},
	PlatformInstagram: {
		kind:        KindPhotoSharing,
		displayName: "Instagram",
		domain:      "instagram.com",
		siteTerm:    "site:instagram.com",
	},
	PlatformTwitter: {
		kind:        KindMicroblogging,
		displayName: "Twitter",
		domain:      "twitter.com",
		siteTerm:    "site:twitter.com",
		showImage:   true,
	},
	PlatformFacebook: {
		kind:        KindGenericSocial,
		displayName: "Facebook",
		domain:      "facebook.com",
		siteTerm:    "site:facebook.com",
	},
}

// AllPlatforms returns every supported platform in display order.
func AllPlatforms() []Platform {
	return []Platform{PlatformLinkedIn, PlatformInstagram, PlatformFacebook, PlatformTwitter}
}

// ParsePlatform converts a string into a Platform. Matching is case-insensitive.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := platforms[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	_, ok := platforms[p]
	return ok
}

// Kind returns the normalization family of the platform.
// Unknown platforms are treated as generic social networks.
func (p Platform) Kind() PlatformKind {
	if info, ok := platforms[p]; ok {
		return info.kind
	}
	return KindGenericSocial
}

// DisplayName returns the human readable platform name.
func (p Platform) DisplayName() string {
	return platforms[p].displayName
}

// Domain returns the platform's registrable domain, e.g. "linkedin.com".
func (p Platform) Domain() string {
	return platforms[p].domain
}

// SiteTerm returns the site-restriction operator used to scope queries to the platform.
func (p Platform) SiteTerm() string {
	return platforms[p].siteTerm
}

// ShowsProfileImage reports whether result cards for this platform display the profile image.
func (p Platform) ShowsProfileImage() bool {
	return platforms[p].showImage
}

// ExportFilename returns the download filename for an export of this platform.
func (p Platform) ExportFilename() string {
	name := string(p)
	if name == "" {
		name = "profiles"
	}
	return name + "_profiles.csv"
}

// PlatformSummary is the API representation of a platform.
type PlatformSummary struct {
	ID                Platform `json:"id"`
	Name              string   `json:"name"`
	Domain            string   `json:"domain"`
	ShowsProfileImage bool     `json:"showsProfileImage"`
}

// PlatformCatalog describes every supported platform.
func PlatformCatalog() []PlatformSummary {
	all := AllPlatforms()
	out := make([]PlatformSummary, 0, len(all))
	for _, p := range all {
		out = append(out, PlatformSummary{
			ID:                p,
			Name:              p.DisplayName(),
			Domain:            p.Domain(),
			ShowsProfileImage: p.ShowsProfileImage(),
		})
	}
	return out
}
