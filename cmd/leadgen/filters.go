package main

import (
	"fmt"

	"github.com/jonathan/leadgen/internal/types"
	"github.com/spf13/cobra"
)

// filterFlags are the search criteria shared by the search and export commands.
type filterFlags struct {
	platform    string
	jobTitle    string
	location    string
	industry    string
	companySize string
	company     string
	experience  string
	education   string
	skills      string
	languages   string
	seniority   string
	page        int
}

func (ff *filterFlags) register(cmd *cobra.Command, withPage bool) {
	fs := cmd.Flags()
	fs.StringVarP(&ff.platform, "platform", "p", string(types.PlatformLinkedIn), "Platform: linkedin, instagram, twitter or facebook")
	fs.StringVar(&ff.jobTitle, "job-title", "", "Job title")
	fs.StringVar(&ff.location, "location", "", "Location")
	fs.StringVar(&ff.industry, "industry", "", "Industry")
	fs.StringVar(&ff.companySize, "company-size", "", "Company size: 1-10, 11-50, 51-200, 201-500 or 501+")
	fs.StringVar(&ff.company, "company", "", "Company")
	fs.StringVar(&ff.experience, "experience", "", "Experience: internship, entry, associate, mid-senior, director or executive")
	fs.StringVar(&ff.education, "education", "", "Education: high-school, bachelor, master or phd")
	fs.StringVar(&ff.skills, "skills", "", "Skills")
	fs.StringVar(&ff.languages, "languages", "", "Languages")
	fs.StringVar(&ff.seniority, "seniority", "", "Seniority: junior, mid-level, senior, lead, manager, director, vp or cxo")
	if withPage {
		fs.IntVar(&ff.page, "page", 1, "Result page (1-10)")
	}
}

// filterSet converts the flags into a validated filter set.
func (ff *filterFlags) filterSet() (types.FilterSet, error) {
	platform, err := types.ParsePlatform(ff.platform)
	if err != nil {
		return types.FilterSet{}, err
	}
	page := ff.page
	if page == 0 {
		page = 1
	}

	f := types.FilterSet{
		JobTitle:    ff.jobTitle,
		Location:    ff.location,
		Industry:    ff.industry,
		CompanySize: ff.companySize,
		Company:     ff.company,
		Experience:  ff.experience,
		Education:   ff.education,
		Skills:      ff.skills,
		Languages:   ff.languages,
		Seniority:   ff.seniority,
		Page:        page,
		Platform:    platform,
	}
	if err := f.Validate(); err != nil {
		return types.FilterSet{}, fmt.Errorf("invalid filters: %w", err)
	}
	return f, nil
}
