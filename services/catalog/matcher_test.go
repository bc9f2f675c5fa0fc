package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/models"
)

func testCatalog() *Catalog {
	return New([]models.VehicleRecord{
		{Make: "Toyota", Model: "Prius", Year: 2019, Type: "Hybrid", ServiceTimeHours: 2},
		{Make: "Toyota", Model: "Prius", Year: 2022, Type: "Hybrid", ServiceTimeHours: 2},
		{Make: "Toyota", Model: "Prius", Year: 2022, Type: "Plug-in Hybrid", ServiceTimeHours: 2.5},
		{Make: "Toyota", Model: "Corolla", Year: 2019, Type: "Hybrid", ServiceTimeHours: 3},
		{Make: "Toyota", Model: "Camry", Year: 2021, Type: "Hybrid", ServiceTimeHours: 3},
	})
}

func TestMatchNoResemblance(t *testing.T) {
	c := testCatalog()
	res := c.Match("hello there, how late are you open?")
	assert.Equal(t, MatchNone, res.Outcome)
	assert.Nil(t, res.Vehicle)
}

func TestMatchUniqueModelYear(t *testing.T) {
	c := testCatalog()
	res := c.Match("I have a 2019 prius")
	require.Equal(t, MatchExact, res.Outcome)
	assert.Equal(t, 2019, res.Vehicle.Year)
	assert.Equal(t, "Prius", res.Vehicle.Model)
}

func TestMatchAmbiguousModelYear(t *testing.T) {
	c := testCatalog()
	res := c.Match("2022 prius")
	require.Equal(t, MatchAmbiguous, res.Outcome)
	require.Len(t, res.Candidates, 2)
	for _, v := range res.Candidates {
		assert.Equal(t, "Prius", v.Model)
		assert.Equal(t, 2022, v.Year)
	}
}

func TestMatchWithoutYearPicksMostRecent(t *testing.T) {
	c := testCatalog()
	res := c.Match("do you service the prius?")
	require.Equal(t, MatchExact, res.Outcome)
	assert.Equal(t, 2022, res.Vehicle.Year)
}

func TestMatchFuzzyToken(t *testing.T) {
	c := testCatalog()
	res := c.Match("2019 priuss")
	require.Equal(t, MatchExact, res.Outcome)
	assert.Equal(t, "Prius", res.Vehicle.Model)
	assert.Equal(t, 2019, res.Vehicle.Year)
}

func TestMatchYearFilterFallsThrough(t *testing.T) {
	// No 2023 Prius in the catalog: the year filter comes up empty and the
	// most recent entry for the model wins.
	c := testCatalog()
	res := c.Match("2023 prius")
	require.Equal(t, MatchExact, res.Outcome)
	assert.Equal(t, 2022, res.Vehicle.Year)
}

func TestMatchFirstTokenWins(t *testing.T) {
	c := testCatalog()
	res := c.Match("corolla or maybe the camry")
	require.Equal(t, MatchExact, res.Outcome)
	assert.Equal(t, "Corolla", res.Vehicle.Model)
}

func TestMatchYearOutsideRangeIgnored(t *testing.T) {
	// 1979 predates the accepted model-year range, so it is not a year hint.
	c := testCatalog()
	res := c.Match("1979 prius")
	require.Equal(t, MatchExact, res.Outcome)
	assert.Equal(t, 2022, res.Vehicle.Year)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
