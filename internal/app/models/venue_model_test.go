package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueLocation(t *testing.T) {
	venue := &Venue{Timezone: "America/New_York"}

	loc, err := venue.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	venue.Timezone = "Not/AZone"
	_, err = venue.Location()
	assert.Error(t, err)
}
