package enrich

import (
	"testing"

	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDetails_Professional(t *testing.T) {
	meta := fetch.Meta{
		"og:title":       "Jane Doe - Senior Engineer - Acme Corp | LinkedIn",
		"og:description": "Building things. · Experience: Acme · Education: TU Berlin · Location: Berlin, Germany · 500+ connections",
		"og:image":       "https://media.example.com/jane.jpg",
	}

	d := details(meta, types.PlatformLinkedIn)

	assert.Equal(t, "Jane Doe", d.FullName)
	assert.Equal(t, "Senior Engineer", d.CurrentPosition)
	assert.Equal(t, "Acme Corp", d.Company, "title company wins over experience")
	assert.Equal(t, "Berlin, Germany", d.Location)
	assert.Equal(t, []types.Education{{School: "TU Berlin"}}, d.Education)
	assert.Equal(t, "https://media.example.com/jane.jpg", d.ProfileImageURL)
}

func TestDetails_ProfessionalExperienceOnly(t *testing.T) {
	d := details(fetch.Meta{
		"og:title":       "Jane Doe",
		"og:description": "Experience: Acme · Location: Paris",
	}, types.PlatformLinkedIn)

	assert.Equal(t, "Acme", d.Company)
	assert.Equal(t, "Paris", d.Location)
	assert.Empty(t, d.CurrentPosition)
}

func TestDetails_Social(t *testing.T) {
	tests := []struct {
		platform types.Platform
		title    string
		want     string
	}{
		{types.PlatformInstagram, "Jane Doe (@jane) • Instagram photos and videos", "Jane Doe"},
		{types.PlatformTwitter, "Jane Doe (@jane) / X", "Jane Doe"},
		{types.PlatformTwitter, "Jane Doe on X: \"hello\"", "Jane Doe"},
		{types.PlatformFacebook, "Jane Doe | Facebook", "Jane Doe"},
		{"", "Jane Doe", "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			d := details(fetch.Meta{"og:title": tt.title}, tt.platform)
			assert.Equal(t, tt.want, d.FullName)
			assert.Empty(t, d.Company)
		})
	}
}

func TestDetails_ProfileNameTags(t *testing.T) {
	d := details(fetch.Meta{
		"profile:first_name": "Jane",
		"profile:last_name":  "Doe",
		"og:title":           "Someone else",
	}, types.PlatformFacebook)
	assert.Equal(t, "Jane Doe", d.FullName)
}

func TestDetails_FallbackKeys(t *testing.T) {
	d := details(fetch.Meta{
		"title":         "Jane Doe | Facebook",
		"description":   "Plain description",
		"twitter:image": "https://cdn.example.com/x.jpg",
	}, types.PlatformFacebook)

	assert.Equal(t, "Jane Doe", d.FullName)
	assert.Equal(t, "Plain description", d.About)
	assert.Equal(t, "https://cdn.example.com/x.jpg", d.ProfileImageURL)
}

func TestParseFollowers(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1,234 Followers, 56 Following, 78 Posts", 1234},
		{"12.5K followers", 12500},
		{"1.2M Followers", 1200000},
		{"3m followers", 3000000},
		{"no counts here", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFollowers(tt.in))
		})
	}
}

func TestMerge(t *testing.T) {
	p := types.NewProfile()
	p.FullName = "Kept"
	p.Followers = 10

	d := types.NewProfile()
	d.FullName = "Ignored"
	d.Company = "Acme"
	d.Followers = 99
	d.Education = []types.Education{{School: "TU Berlin"}}

	out := merge(p, d)
	assert.Equal(t, "Kept", out.FullName)
	assert.Equal(t, "Acme", out.Company)
	assert.Equal(t, 10, out.Followers)
	assert.Equal(t, d.Education, out.Education)
	assert.Empty(t, p.Education, "input education is not aliased")
}
