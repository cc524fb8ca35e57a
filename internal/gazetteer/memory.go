package gazetteer

import (
	"strings"

	"github.com/addressparser/internal/grid"
)

// Memory is an in-memory Store. It backs tests and small fixture-driven
// deployments where standing up PostgreSQL is not worth it. Populate it
// before first use; reads are then safe concurrently.
type Memory struct {
	pinLat    float64
	pinLong   float64
	postcodes map[string]PostcodeRecord
	areas     map[string]AreaRecord
	features  []FeatureRecord
	roads     []RoadRecord
}

// NewMemory creates an empty store. Pin sizes must match the parser's so
// cell queries agree on bucketing.
func NewMemory(pinLat, pinLong float64) *Memory {
	return &Memory{
		pinLat:    pinLat,
		pinLong:   pinLong,
		postcodes: make(map[string]PostcodeRecord),
		areas:     make(map[string]AreaRecord),
	}
}

// AddPostcode registers a postcode record.
func (m *Memory) AddPostcode(r PostcodeRecord) {
	m.postcodes[r.Code] = r
}

// AddArea registers an administrative area record.
func (m *Memory) AddArea(r AreaRecord) {
	m.areas[r.Code] = r
}

// AddFeature registers a settlement feature.
func (m *Memory) AddFeature(f FeatureRecord) {
	m.features = append(m.features, f)
}

// AddRoad registers a road.
func (m *Memory) AddRoad(r RoadRecord) {
	m.roads = append(m.roads, r)
}

func (m *Memory) Postcode(code string) (*PostcodeRecord, error) {
	r, ok := m.postcodes[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) Area(code string) (*AreaRecord, error) {
	r, ok := m.areas[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) FeaturesInBox(minLat, minLong, maxLat, maxLong float64) ([]FeatureRecord, error) {
	var out []FeatureRecord
	for _, f := range m.features {
		if f.Location.Lat >= minLat && f.Location.Lat <= maxLat &&
			f.Location.Long >= minLong && f.Location.Long < maxLong {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *Memory) FeaturesByCounty(county string) ([]FeatureRecord, error) {
	var out []FeatureRecord
	for _, f := range m.features {
		if f.FullCounty == county {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *Memory) FeaturesByNames(names []string) ([]FeatureRecord, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []FeatureRecord
	for _, f := range m.features {
		for _, alias := range strings.Split(f.Name, "/") {
			if want[alias] {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) RoadsInCells(keys []grid.Key) ([]RoadRecord, error) {
	want := keySet(keys)
	var out []RoadRecord
	for _, r := range m.roads {
		cell := grid.Cell(r.Centre.Lat, r.Centre.Long, m.pinLat, m.pinLong)
		if want[cell] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) RoadsByName(name string) ([]RoadRecord, error) {
	var out []RoadRecord
	for _, r := range m.roads {
		if strings.EqualFold(r.Name, name) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) PostcodesInCells(keys []grid.Key) ([]PostcodeRecord, error) {
	want := keySet(keys)
	var out []PostcodeRecord
	for _, r := range m.postcodes {
		cell := grid.Cell(r.Location.Lat, r.Location.Long, m.pinLat, m.pinLong)
		if want[cell] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) Counties() (map[string]Extent, error) {
	counties := make(map[string]Extent)
	for _, f := range m.features {
		if f.FullCounty == "" {
			continue
		}
		e, ok := counties[f.FullCounty]
		if !ok {
			e = Extent{
				MinLat:  f.Location.Lat,
				MaxLat:  f.Location.Lat,
				MinLong: f.Location.Long,
				MaxLong: f.Location.Long,
			}
		} else {
			if f.Location.Lat < e.MinLat {
				e.MinLat = f.Location.Lat
			}
			if f.Location.Lat > e.MaxLat {
				e.MaxLat = f.Location.Lat
			}
			if f.Location.Long < e.MinLong {
				e.MinLong = f.Location.Long
			}
			if f.Location.Long > e.MaxLong {
				e.MaxLong = f.Location.Long
			}
		}
		counties[f.FullCounty] = e
	}
	return counties, nil
}

func (m *Memory) Cities() (map[string]FeatureRecord, error) {
	var cities []FeatureRecord
	for _, f := range m.features {
		if f.Code == FeatureCity {
			cities = append(cities, f)
		}
	}
	return expandCityAliases(cities), nil
}

func keySet(keys []grid.Key) map[grid.Key]bool {
	set := make(map[grid.Key]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
