// Package gazetteer provides read-only access to the reference data the
// parser resolves against: postcodes, administrative areas, settlement
// features and roads. The data is loaded once at process start and is safe
// for concurrent readers.
package gazetteer

import (
	"errors"
	"regexp"

	"github.com/addressparser/internal/grid"
)

// ErrNotFound is returned by point lookups when no record exists. It is the
// only expected failure mode; anything else is an infrastructure error.
var ErrNotFound = errors.New("gazetteer: not found")

// Store is the query surface the parser consumes. Implementations must be
// safe for concurrent use after construction.
type Store interface {
	// Postcode looks up one unit postcode. Returns ErrNotFound when the
	// code is not in the gazetteer.
	Postcode(code string) (*PostcodeRecord, error)

	// Area looks up an administrative area by government code.
	Area(code string) (*AreaRecord, error)

	// FeaturesInBox returns settlement features inside the bounding box.
	// Latitude bounds are inclusive; the upper longitude bound is
	// exclusive.
	FeaturesInBox(minLat, minLong, maxLat, maxLong float64) ([]FeatureRecord, error)

	// FeaturesByCounty returns every settlement feature owned by a county,
	// by full county name.
	FeaturesByCounty(county string) ([]FeatureRecord, error)

	// FeaturesByNames returns features whose name (any alias) equals one of
	// the given names exactly.
	FeaturesByNames(names []string) ([]FeatureRecord, error)

	// RoadsInCells returns roads whose centroid falls in any of the grid
	// cells.
	RoadsInCells(keys []grid.Key) ([]RoadRecord, error)

	// RoadsByName returns roads matching the name exactly,
	// case-insensitively.
	RoadsByName(name string) ([]RoadRecord, error)

	// PostcodesInCells returns postcodes located in any of the grid cells.
	PostcodesInCells(keys []grid.Key) ([]PostcodeRecord, error)

	// Counties returns the bounding extent of every known county, keyed by
	// full county name. Computed once; callers cache the result.
	Counties() (map[string]Extent, error)

	// Cities returns city features keyed by alias, with "/"-separated
	// aliases expanded and the historical short names added.
	Cities() (map[string]FeatureRecord, error)
}

var reAliasSep = regexp.MustCompile(`\s*/\s*`)

// expandCityAliases splits multi-alias city names into one entry per alias
// and adds the two historical short names still common in addresses.
func expandCityAliases(features []FeatureRecord) map[string]FeatureRecord {
	cities := make(map[string]FeatureRecord)
	for _, f := range features {
		for _, name := range reAliasSep.Split(f.Name, -1) {
			if name == "" {
				continue
			}
			cities[name] = f
			switch name {
			case "Kingston upon Hull":
				cities["Hull"] = f
			case "Newcastle upon Tyne":
				cities["Newcastle"] = f
			}
		}
	}
	return cities
}
