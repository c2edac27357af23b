//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultPage_TotalPagesInvariant(t *testing.T) {
	for reported := int64(0); reported <= 250; reported++ {
		page := NewResultPage(nil, reported, 1)

		capped := int(min(reported, 100))
		want := (capped + 9) / 10

		require.Equal(t, capped, page.TotalResults, "reported=%d", reported)
		require.Equal(t, want, page.TotalPages, "reported=%d", reported)
	}
}

func TestNewResultPage_LargeAndNegativeTotals(t *testing.T) {
	page := NewResultPage(nil, 4_560_000, 2)
	assert.Equal(t, 100, page.TotalResults)
	assert.Equal(t, 10, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)

	page = NewResultPage(nil, -5, 1)
	assert.Equal(t, 0, page.TotalResults)
	assert.Equal(t, 0, page.TotalPages)
}

func TestEmptyPage_SerializesEmptyItems(t *testing.T) {
	page := EmptyPage(4)

	data, err := json.Marshal(page)
	require.NoError(t, err)

	assert.JSONEq(t, `{"items":[],"totalResults":0,"currentPage":4,"totalPages":0}`, string(data))
}

func TestNewProfile_Defaults(t *testing.T) {
	p := NewProfile()

	assert.NotNil(t, p.Education)
	assert.Empty(t, p.Education)
	assert.Zero(t, p.Followers)
	assert.Empty(t, p.Location)
	assert.Empty(t, p.ConnectionDegree)
}
