package types

import (
	"github.com/go-playground/validator/v10"
)

// PageSize is the number of results the search API returns per page.
const PageSize = 10

// MaxResults is the hard cap the search API places on reachable results.
const MaxResults = 100

// ExportPages is the number of pages fetched by a bulk export (MaxResults / PageSize).
const ExportPages = MaxResults / PageSize

// FilterSet is a snapshot of the user's search criteria for one search invocation.
// It is passed by value and never modified by the search core.
type FilterSet struct {
	JobTitle    string   `json:"jobTitle"`
	Location    string   `json:"location"`
	Industry    string   `json:"industry"`
	CompanySize string   `json:"companySize" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501+"`
	Company     string   `json:"company"`
	Experience  string   `json:"experience" validate:"omitempty,oneof=internship entry associate mid-senior director executive"`
	Education   string   `json:"education" validate:"omitempty,oneof=high-school bachelor master phd"`
	Skills      string   `json:"skills"`
	Languages   string   `json:"languages"`
	Seniority   string   `json:"seniority" validate:"omitempty,oneof=junior mid-level senior lead manager director vp cxo"`
	Page        int      `json:"page" validate:"min=1"`
	Platform    Platform `json:"platform" validate:"required,oneof=linkedin instagram twitter facebook"`
}

var filterValidator = validator.New()

// Validate checks enumerated fields, the page number and the platform.
func (f FilterSet) Validate() error {
	return filterValidator.Struct(f)
}

// WithPage returns a copy of the filter set pointing at the given page.
func (f FilterSet) WithPage(page int) FilterSet {
	f.Page = page
	return f
}

// StartIndex returns the 1-based offset of the first result on the filter's page.
func (f FilterSet) StartIndex() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page-1)*PageSize + 1
}
