package listings

import (
	"testing"

	"bookify/models"
	"bookify/utils"

	"github.com/stretchr/testify/assert"
)

func TestValidateDraft(t *testing.T) {
	valid := models.Listing{Category: "Homes", Title: "Cozy Loft", Price: 120}
	assert.Empty(t, validateDraft(&valid))

	cases := []struct {
		name string
		l    models.Listing
		want string
	}{
		{"unknown category", models.Listing{Category: "Boats", Title: "x"}, "invalid category"},
		{"empty category", models.Listing{Title: "x"}, "invalid category"},
		{"missing title", models.Listing{Category: "Homes"}, "missing title"},
		{"negative price", models.Listing{Category: "Homes", Title: "x", Price: -1}, "invalid price"},
		{"inverted age range", models.Listing{
			Category: "Experiences", Title: "Hike",
			AgeRestriction: &models.AgeRestriction{Min: 18, Max: 12},
		}, "invalid age range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validateDraft(&tc.l))
		})
	}
}

func TestBrowseFilterScopesDraftsToCaller(t *testing.T) {
	opts := utils.QueryOptions{Status: "draft"}

	// A draft query always binds to the authenticated caller, even if the
	// request names another host's uid.
	filter, denied := browseFilter(opts, "otherhost", "host1")
	assert.Empty(t, denied)
	assert.Equal(t, "draft", filter["status"])
	assert.Equal(t, "host1", filter["uid"])

	_, denied = browseFilter(opts, "otherhost", "")
	assert.NotEmpty(t, denied)
}

func TestBrowseFilterPublishedIsPublic(t *testing.T) {
	filter, denied := browseFilter(utils.QueryOptions{Category: "Homes"}, "host2", "")
	assert.Empty(t, denied)
	assert.Equal(t, "published", filter["status"])
	assert.Equal(t, "host2", filter["uid"])
	assert.Equal(t, "Homes", filter["category"])
}

func TestValidateDraftZeroPriceAllowed(t *testing.T) {
	l := models.Listing{Category: "Services", Title: "Free consult", Price: 0}
	assert.Empty(t, validateDraft(&l))
}
