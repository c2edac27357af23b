package types

// Education is one education entry on a profile.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	Years  string `json:"years"`
}

// Profile is the canonical representation of one social platform listing.
// Every field has a usable zero value; Education is never nil.
type Profile struct {
	Title            string      `json:"title"`
	Link             string      `json:"link"`
	Snippet          string      `json:"snippet"`
	FullName         string      `json:"fullName"`
	CurrentPosition  string      `json:"currentPosition"`
	Company          string      `json:"company"`
	Education        []Education `json:"education"`
	Location         string      `json:"location"`
	Followers        int         `json:"followers"`
	ConnectionDegree string      `json:"connectionDegree"`
	About            string      `json:"about"`
	ProfileImageURL  string      `json:"profileImageUrl"`
}

// NewProfile returns a profile with all defaults populated.
func NewProfile() Profile {
	return Profile{Education: []Education{}}
}

// ResultPage is one page of normalized search results.
type ResultPage struct {
	Items        []Profile `json:"items"`
	TotalResults int       `json:"totalResults"`
	CurrentPage  int       `json:"currentPage"`
	TotalPages   int       `json:"totalPages"`
}

// NewResultPage builds a page, capping the reported total at MaxResults
// and deriving TotalPages from the capped total.
func NewResultPage(items []Profile, reportedTotal int64, page int) *ResultPage {
	if items == nil {
		items = []Profile{}
	}
	total := int(min(max(reportedTotal, 0), MaxResults))
	return &ResultPage{
		Items:        items,
		TotalResults: total,
		CurrentPage:  page,
		TotalPages:   TotalPages(total),
	}
}

// EmptyPage returns the page used for "no results" and for absorbed failures.
func EmptyPage(page int) *ResultPage {
	return &ResultPage{
		Items:       []Profile{},
		CurrentPage: page,
	}
}

// TotalPages returns ceil(total / PageSize).
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}
