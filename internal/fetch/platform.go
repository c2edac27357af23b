package fetch

import (
	"net/url"
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

// extraHosts maps alternate domains onto platforms.
var extraHosts = map[string]types.Platform{
	"x.com":      types.PlatformTwitter,
	"fb.com":     types.PlatformFacebook,
	"instagr.am": types.PlatformInstagram,
}

// DetectPlatform identifies the social platform hosting a profile URL.
// The second result is false for unrecognized hosts.
func DetectPlatform(urlStr string) (types.Platform, bool) {
	parsed, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil || parsed.Host == "" {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, p := range types.AllPlatforms() {
		if matchesDomain(host, p.Domain()) {
			return p, true
		}
	}
	for domain, p := range extraHosts {
		if matchesDomain(host, domain) {
			return p, true
		}
	}
	return "", false
}

func matchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// PlatformContentSelectors returns content selectors for a platform's profile pages.
func PlatformContentSelectors(platform types.Platform) []string {
	switch platform.Kind() {
	case types.KindProfessional:
		return []string{
			".top-card-layout",
			".core-section-container",
			"main",
		}
	case types.KindPhotoSharing:
		return []string{
			"header section",
			"main",
		}
	case types.KindMicroblogging:
		return []string{
			"[data-testid='UserProfileHeader_Items']",
			"[data-testid='UserDescription']",
			"main",
		}
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a platform's profile pages.
func PlatformNoiseSelectors(platform types.Platform) []string {
	common := []string{
		"form",
		".cookie-consent",
		".gdpr-notice",
		".social-share",
	}

	switch platform.Kind() {
	case types.KindProfessional:
		return append(common,
			".contextual-sign-in-modal",
			".join-form",
			".people-also-viewed",
			".aside-section-container",
		)
	case types.KindPhotoSharing:
		return append(common,
			"[role='presentation']",
		)
	case types.KindMicroblogging:
		return append(common,
			"[data-testid='sheetDialog']",
			"[data-testid='BottomBar']",
		)
	default:
		return common
	}
}
