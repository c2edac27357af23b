package enrich

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/types"
)

var followersPattern = regexp.MustCompile(`(?i)(\d[\d.,]*)\s*([km])?\s+followers`)

// details reads the profile fields a page's metadata can supply.
func details(meta fetch.Meta, platform types.Platform) types.Profile {
	d := types.NewProfile()

	title := meta.Get("og:title", "twitter:title", "title")
	description := meta.Get("og:description", "description", "twitter:description")

	d.Title = title
	d.About = description
	d.ProfileImageURL = meta.Get("og:image", "og:image:url", "twitter:image")
	d.Followers = parseFollowers(description)

	first, last := meta.Get("profile:first_name"), meta.Get("profile:last_name")
	d.FullName = strings.TrimSpace(first + " " + last)

	if platform.Kind() == types.KindProfessional {
		name, position, company := professionalTitle(title)
		if d.FullName == "" {
			d.FullName = name
		}
		d.CurrentPosition = position
		d.Company = company
		applyProfessionalFacts(&d, description)
		return d
	}

	if d.FullName == "" {
		d.FullName = socialName(title)
	}
	return d
}

// professionalTitle splits "Name - Position - Company | LinkedIn".
func professionalTitle(title string) (name, position, company string) {
	if i := strings.LastIndex(strings.ToLower(title), " | linkedin"); i >= 0 {
		title = title[:i]
	}
	parts := strings.Split(title, " - ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	name = parts[0]
	if len(parts) > 1 {
		position = parts[1]
	}
	if len(parts) > 2 {
		company = parts[2]
	}
	return name, position, company
}

// applyProfessionalFacts reads the "Experience: X · Education: Y · Location: Z"
// summary professional networks put in their descriptions.
func applyProfessionalFacts(d *types.Profile, description string) {
	for _, part := range strings.Split(description, "·") {
		label, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "experience":
			if d.Company == "" {
				d.Company = value
			}
		case "education":
			d.Education = append(d.Education, types.Education{School: value})
		case "location":
			d.Location = value
		}
	}
}

// socialName takes the display name from titles like
// "Jane Doe (@jane) • Instagram photos" or "Jane Doe (@jane) / X".
func socialName(title string) string {
	for _, sep := range []string{" (@", " | ", " • ", " on X", " on Twitter"} {
		if i := strings.Index(title, sep); i >= 0 {
			title = title[:i]
		}
	}
	return strings.TrimSpace(title)
}

// parseFollowers reads counts like "1,234 Followers", "12.5K followers" or "3M Followers".
func parseFollowers(s string) int {
	m := followersPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	number := strings.ReplaceAll(m[1], ",", "")
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(m[2]) {
	case "k":
		value *= 1_000
	case "m":
		value *= 1_000_000
	}
	return int(math.Round(value))
}
