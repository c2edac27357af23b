// Package query turns a filter set into a site-restricted web search query.
package query

import (
	"strings"

	"github.com/jonathan/leadgen/internal/types"
)

// Terms returns the filter values that take part in the query for the filter's
// platform, in their fixed order. Whitespace runs inside a value collapse to one
// space and blank values are dropped.
func Terms(f types.FilterSet) []string {
	var fields []string
	if f.Platform.Kind() == types.KindProfessional {
		fields = []string{
			f.JobTitle,
			f.Location,
			f.Industry,
			f.CompanySize,
			f.Company,
			f.Experience,
			f.Education,
			f.Skills,
			f.Languages,
			f.Seniority,
		}
	} else {
		fields = []string{
			f.JobTitle,
			f.Location,
			f.Industry,
			f.Company,
			f.Skills,
		}
	}

	terms := make([]string, 0, len(fields))
	for _, v := range fields {
		if v = strings.Join(strings.Fields(v), " "); v != "" {
			terms = append(terms, v)
		}
	}
	return terms
}

// Build returns the search query for f: the platform's site restriction followed by
// the non-empty filter values, separated by single spaces. Whitespace inside a value
// is collapsed; quotes and search operators are passed through unescaped.
func Build(f types.FilterSet) string {
	parts := make([]string, 0, 11)
	if site := f.Platform.SiteTerm(); site != "" {
		parts = append(parts, site)
	}
	parts = append(parts, Terms(f)...)
	return strings.TrimSpace(strings.Join(parts, " "))
}
