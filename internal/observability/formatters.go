// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/leadgen/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of education entries to display
	maxItemsToShow = 3
)

// Printer handles formatted output for the command line
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResultPage outputs one page of search results.
func (p *Printer) PrintResultPage(platform types.Platform, page *types.ResultPage) {
	if page == nil {
		return
	}

	var sb strings.Builder
	if len(page.Items) == 0 {
		sb.WriteString("No results.")
	}
	for i, item := range page.Items {
		n := (page.CurrentPage-1)*types.PageSize + i + 1
		sb.WriteString(fmt.Sprintf("%3d. %s\n", n, item.Title))
		sb.WriteString(fmt.Sprintf("     %s\n", item.Link))
		if item.CurrentPosition != "" {
			line := item.CurrentPosition
			if item.Company != "" {
				line += " @ " + item.Company
			}
			sb.WriteString(fmt.Sprintf("     %s\n", line))
		}
		if item.ConnectionDegree != "" {
			sb.WriteString(fmt.Sprintf("     %s connection\n", item.ConnectionDegree))
		}
		if platform.ShowsProfileImage() && item.ProfileImageURL != "" {
			sb.WriteString(fmt.Sprintf("     image: %s\n", item.ProfileImageURL))
		}
		if i < len(page.Items)-1 {
			sb.WriteString("\n")
		}
	}

	title := fmt.Sprintf("%s RESULTS  page %d of %d  (%d total)",
		strings.ToUpper(platform.DisplayName()), page.CurrentPage, page.TotalPages, page.TotalResults)
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile outputs every populated field of a profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	field := func(label, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%-10s %s\n", label+":", value))
		}
	}

	field("Name", profile.FullName)
	field("Title", profile.Title)
	field("Link", profile.Link)
	field("Position", profile.CurrentPosition)
	field("Company", profile.Company)
	field("Location", profile.Location)
	if profile.Followers > 0 {
		field("Followers", fmt.Sprintf("%d", profile.Followers))
	}
	field("Degree", profile.ConnectionDegree)
	field("Image", profile.ProfileImageURL)

	if len(profile.Education) > 0 {
		sb.WriteString("Education:\n")
		count := min(len(profile.Education), maxItemsToShow)
		for _, edu := range profile.Education[:count] {
			line := edu.School
			if edu.Degree != "" {
				line += ", " + edu.Degree
			}
			if edu.Years != "" {
				line += " (" + edu.Years + ")"
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", line))
		}
		if len(profile.Education) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Education)-maxItemsToShow))
		}
	}

	if about := profile.About; about != "" {
		sb.WriteString("\n")
		sb.WriteString(about)
	} else if profile.Snippet != "" {
		sb.WriteString("\n")
		sb.WriteString(profile.Snippet)
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExportSummary reports where an export was written.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExportSummary(path string, rows int) {
	fmt.Fprintf(p.out, "✓ Exported %d profiles to %s\n", rows, path)
}

// PrintPlatforms lists the supported platforms.
func (p *Printer) PrintPlatforms(platforms []types.PlatformSummary) {
	var sb strings.Builder
	for _, ps := range platforms {
		image := ""
		if ps.ShowsProfileImage {
			image = "  (profile image)"
		}
		sb.WriteString(fmt.Sprintf("%-10s %-10s %s%s\n", ps.ID, ps.Name, ps.Domain, image))
	}
	p.printBox("PLATFORMS", strings.TrimSuffix(sb.String(), "\n"))
}
