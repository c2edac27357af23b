package export

import (
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

// CSVHeader is the first line of every export.
const CSVHeader = "Name,Profile URL,Description"

var (
	textReplacer = strings.NewReplacer(",", " ", "\r\n", " ", "\n", " ", "\r", " ")
	linkReplacer = strings.NewReplacer(",", "%2C", "\r", "", "\n", "")
)

// WriteCSV renders profiles as header plus one "title,link,snippet" row each.
// Fields are never quoted: commas and line breaks are removed from text and
// percent-encoded in links, so every row splits into exactly three fields.
// Rows are joined by "\n" with no trailing newline.
func WriteCSV(profiles []types.Profile) []byte {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, p := range profiles {
		b.WriteByte('\n')
		b.WriteString(textReplacer.Replace(p.Title))
		b.WriteByte(',')
		b.WriteString(linkReplacer.Replace(p.Link))
		b.WriteByte(',')
		b.WriteString(textReplacer.Replace(p.Snippet))
	}
	return []byte(b.String())
}
