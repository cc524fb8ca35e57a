package gazetteer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addressparser/internal/grid"
)

func buildMemory() *Memory {
	m := NewMemory(0.02, 0.03)

	m.AddPostcode(PostcodeRecord{
		Code:             "GU34 1AA",
		Location:         Point{Lat: 51.1498, Long: -0.9769},
		QualityIndicator: 10,
		CountyCode:       "E10000014",
	})
	m.AddArea(AreaRecord{Code: "E10000014", FullName: "Hampshire", Tier: "county"})

	m.AddFeature(FeatureRecord{
		Name: "Alton", Code: FeatureTown,
		Location: Point{Lat: 51.1498, Long: -0.9769}, FullCounty: "Hampshire",
	})
	m.AddFeature(FeatureRecord{
		Name: "Selborne", Code: FeatureLocality,
		Location: Point{Lat: 51.0955, Long: -0.9409}, FullCounty: "Hampshire",
	})
	m.AddFeature(FeatureRecord{
		Name: "Kingston upon Hull", Code: FeatureCity,
		Location: Point{Lat: 53.7676, Long: -0.3274}, FullCounty: "East Riding of Yorkshire",
	})
	m.AddFeature(FeatureRecord{
		Name: "Whitehill/Bordon", Code: FeatureTown,
		Location: Point{Lat: 51.1125, Long: -0.8631}, FullCounty: "Hampshire",
	})

	m.AddRoad(RoadRecord{
		Name:   "HIGH STREET",
		Centre: Point{Lat: 51.1501, Long: -0.9735},
		MinLat: 51.1495, MaxLat: 51.1507, MinLong: -0.9760, MaxLong: -0.9710,
	})

	return m
}

func TestMemoryPostcode(t *testing.T) {
	m := buildMemory()

	pc, err := m.Postcode("GU34 1AA")
	require.NoError(t, err)
	assert.Equal(t, 10, pc.QualityIndicator)
	assert.Equal(t, "E10000014", pc.CountyCode)

	_, err = m.Postcode("ZZ9 9ZZ")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryArea(t *testing.T) {
	m := buildMemory()

	area, err := m.Area("E10000014")
	require.NoError(t, err)
	assert.Equal(t, "Hampshire", area.FullName)

	_, err = m.Area("E999")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryFeaturesInBox(t *testing.T) {
	m := buildMemory()

	features, err := m.FeaturesInBox(51.0, -1.0, 51.2, -0.8)
	require.NoError(t, err)

	var names []string
	for _, f := range features {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"Alton", "Selborne", "Whitehill/Bordon"}, names)
}

func TestMemoryFeaturesByCounty(t *testing.T) {
	m := buildMemory()

	features, err := m.FeaturesByCounty("Hampshire")
	require.NoError(t, err)
	assert.Len(t, features, 3)

	features, err = m.FeaturesByCounty("Rutland")
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestMemoryFeaturesByNames(t *testing.T) {
	m := buildMemory()

	// Any alias of a slash-joined name matches.
	features, err := m.FeaturesByNames([]string{"Bordon", "Selborne"})
	require.NoError(t, err)

	var names []string
	for _, f := range features {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"Whitehill/Bordon", "Selborne"}, names)
}

func TestMemoryRoads(t *testing.T) {
	m := buildMemory()

	cell := grid.Cell(51.1501, -0.9735, 0.02, 0.03)
	roads, err := m.RoadsInCells([]grid.Key{cell})
	require.NoError(t, err)
	require.Len(t, roads, 1)
	assert.Equal(t, "HIGH STREET", roads[0].Name)

	roads, err = m.RoadsInCells([]grid.Key{{Lat: 0, Long: 0}})
	require.NoError(t, err)
	assert.Empty(t, roads)

	roads, err = m.RoadsByName("high street")
	require.NoError(t, err)
	assert.Len(t, roads, 1)
}

func TestMemoryPostcodesInCells(t *testing.T) {
	m := buildMemory()

	cell := grid.Cell(51.1498, -0.9769, 0.02, 0.03)
	records, err := m.PostcodesInCells([]grid.Key{cell})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "GU34 1AA", records[0].Code)
}

func TestMemoryCounties(t *testing.T) {
	m := buildMemory()

	counties, err := m.Counties()
	require.NoError(t, err)

	hampshire, ok := counties["Hampshire"]
	require.True(t, ok)
	assert.InDelta(t, 51.0955, hampshire.MinLat, 1e-9)
	assert.InDelta(t, 51.1498, hampshire.MaxLat, 1e-9)
	assert.InDelta(t, -0.9769, hampshire.MinLong, 1e-9)
	assert.InDelta(t, -0.8631, hampshire.MaxLong, 1e-9)

	_, ok = counties["East Riding of Yorkshire"]
	assert.True(t, ok)
}

func TestMemoryCities(t *testing.T) {
	m := buildMemory()

	cities, err := m.Cities()
	require.NoError(t, err)

	// Towns and localities are not cities.
	assert.NotContains(t, cities, "Alton")

	hull, ok := cities["Kingston upon Hull"]
	require.True(t, ok)
	assert.Equal(t, "East Riding of Yorkshire", hull.FullCounty)

	// The historical short name is aliased in.
	short, ok := cities["Hull"]
	require.True(t, ok)
	assert.Equal(t, hull.Name, short.Name)
}

func TestExpandCityAliases(t *testing.T) {
	cities := expandCityAliases([]FeatureRecord{
		{Name: "Brighton / Hove", Code: FeatureCity},
		{Name: "Newcastle upon Tyne", Code: FeatureCity},
	})

	assert.Contains(t, cities, "Brighton")
	assert.Contains(t, cities, "Hove")
	assert.Contains(t, cities, "Newcastle upon Tyne")
	assert.Contains(t, cities, "Newcastle")
	assert.NotContains(t, cities, "Brighton / Hove")
}
