package export

import (
	"strings"
	"testing"

	"github.com/jonathan/leadgen/internal/types"
	"github.com/stretchr/testify/assert"
)

func profile(title, link, snippet string) types.Profile {
	p := types.NewProfile()
	p.Title, p.Link, p.Snippet = title, link, snippet
	return p
}

func TestWriteCSV_Format(t *testing.T) {
	got := WriteCSV([]types.Profile{
		profile("Jane Doe - CTO", "https://www.linkedin.com/in/janedoe", "Building things."),
		profile("John Roe", "https://www.linkedin.com/in/johnroe", ""),
	})

	want := "Name,Profile URL,Description\n" +
		"Jane Doe - CTO,https://www.linkedin.com/in/janedoe,Building things.\n" +
		"John Roe,https://www.linkedin.com/in/johnroe,"
	assert.Equal(t, want, string(got))
}

func TestWriteCSV_Empty(t *testing.T) {
	assert.Equal(t, CSVHeader, string(WriteCSV(nil)))
}

func TestWriteCSV_Sanitizes(t *testing.T) {
	got := WriteCSV([]types.Profile{
		profile("Doe, Jane", "https://example.com/a,b", "Go, Kafka,\nand Rust\r\nengineer"),
	})

	lines := strings.Split(string(got), "\n")
	assert.Equal(t, []string{CSVHeader, "Doe  Jane,https://example.com/a%2Cb,Go  Kafka  and Rust engineer"}, lines)
}

func TestWriteCSV_EveryRowHasThreeFields(t *testing.T) {
	hostile := []string{"", ",", ",,,", "a\nb", "\r\n,\r\n", "\"quoted, value\"", "tab\there"}

	var profiles []types.Profile
	for _, title := range hostile {
		for _, link := range hostile {
			for _, snippet := range hostile {
				profiles = append(profiles, profile(title, link, snippet))
			}
		}
	}

	lines := strings.Split(string(WriteCSV(profiles)), "\n")
	assert.Len(t, lines, len(profiles)+1)
	for i, line := range lines {
		assert.Len(t, strings.Split(line, ","), 3, "line %d: %q", i, line)
	}
}
