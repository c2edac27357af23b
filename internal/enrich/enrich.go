// Package enrich fills in missing profile details from the public profile page.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/normalize"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedHost is the cause of an *Error for links outside the supported platforms.
var ErrUnsupportedHost = errors.New("not a supported profile host")

// Error reports a profile page that could not be retrieved or parsed.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("enrich error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("enrich error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Enricher fetches profile pages and merges their metadata into profiles.
type Enricher struct {
	fetchOpts *fetch.Options
	render    fetch.Renderer
	logger    logrus.FieldLogger
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithFetchOptions overrides the HTTP fetch options.
func WithFetchOptions(opts *fetch.Options) Option {
	return func(e *Enricher) { e.fetchOpts = opts }
}

// WithRenderer enables the headless browser fallback for thin pages.
func WithRenderer(r fetch.Renderer) Option {
	return func(e *Enricher) { e.render = r }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Enricher) { e.logger = l }
}

// New creates an Enricher.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		fetchOpts: fetch.DefaultOptions(),
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich returns a copy of profile with empty fields filled from the page at
// profile.Link. Fields that already hold a value are left alone. Only links on
// a supported platform's host are fetched.
func (e *Enricher) Enrich(ctx context.Context, profile types.Profile) (types.Profile, error) {
	link := strings.TrimSpace(profile.Link)
	if link == "" {
		return profile, &Error{Message: "profile has no link"}
	}

	platform, ok := fetch.DetectPlatform(link)
	if !ok {
		return profile, &Error{URL: link, Message: "refusing to fetch", Cause: ErrUnsupportedHost}
	}
	log := e.logger.WithFields(logrus.Fields{"url": link, "platform": platform})

	html, err := e.load(ctx, link, platform, log)
	if err != nil {
		return profile, err
	}

	meta, err := fetch.ExtractMeta(html)
	if err != nil {
		return profile, &Error{URL: link, Message: "failed to parse page", Cause: err}
	}

	enriched := merge(profile, details(meta, platform))
	log.Debug("profile enriched")
	return enriched, nil
}

// EnrichURL enriches an otherwise empty profile for url.
func (e *Enricher) EnrichURL(ctx context.Context, url string) (types.Profile, error) {
	p := types.NewProfile()
	p.Link = url
	return e.Enrich(ctx, p)
}

// load fetches the page over HTTP and, when a renderer is configured, falls
// back to the browser for failed or thin responses.
func (e *Enricher) load(ctx context.Context, link string, platform types.Platform, log logrus.FieldLogger) (string, error) {
	res, fetchErr := fetch.URL(ctx, link, e.fetchOpts)
	if fetchErr == nil {
		text, err := fetch.ExtractMainText(res.HTML,
			fetch.PlatformContentSelectors(platform),
			fetch.PlatformNoiseSelectors(platform)...)
		if err != nil || e.render == nil || !fetch.ShouldUseBrowser(text) {
			return res.HTML, nil
		}
		log.WithField("text_length", len(text)).Debug("thin page, rendering with browser")
	} else if e.render == nil {
		return "", &Error{URL: link, Message: "failed to fetch page", Cause: fetchErr}
	}

	rendered, err := e.render(ctx, link)
	if err != nil {
		if fetchErr == nil {
			log.WithError(err).Warn("browser rendering failed, using fetched page")
			return res.HTML, nil
		}
		return "", &Error{URL: link, Message: "failed to render page", Cause: err}
	}
	return rendered, nil
}

// merge copies every non-empty detail into an empty field of p.
func merge(p types.Profile, d types.Profile) types.Profile {
	out := p
	out.Education = append([]types.Education{}, p.Education...)

	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}
	fill(&out.FullName, d.FullName)
	fill(&out.CurrentPosition, d.CurrentPosition)
	fill(&out.Company, d.Company)
	fill(&out.Location, d.Location)
	fill(&out.About, d.About)
	fill(&out.Title, d.Title)

	if (out.ProfileImageURL == "" || out.ProfileImageURL == normalize.DefaultProfileImageURL) && d.ProfileImageURL != "" {
		out.ProfileImageURL = d.ProfileImageURL
	}
	if out.Followers == 0 {
		out.Followers = d.Followers
	}
	if len(out.Education) == 0 {
		out.Education = append(out.Education, d.Education...)
	}
	return out
}
