package parser

import (
	"sort"
	"strings"

	"github.com/addressparser/internal/gazetteer"
	"github.com/addressparser/internal/grid"
)

// Default search window half-sizes when no postcode quality indicator is
// available.
const (
	defaultLatFuzz  = 0.2
	defaultLongFuzz = 0.4
)

// populateFromArea resolves town and locality from settlement features.
// With a usable point the features come from a window around it, sized by
// the postcode quality indicator; with only a county they come from that
// county. If nothing matched, a second pass retries with features fetched
// by exact name from the comma-separated remainder segments. If that
// pass succeeds while a county was matched, the county conflicts with
// geography.
func (ps *Parser) populateFromArea(p *ParsedAddress) error {
	var features []gazetteer.FeatureRecord
	var err error
	switch {
	case p.Inferred.Point != nil && p.Inferred.Source != SourceCounty:
		latFuzz, longFuzz := defaultLatFuzz, defaultLongFuzz
		if p.Inferred.Quality != nil {
			latFuzz = float64(*p.Inferred.Quality) / 60
			longFuzz = latFuzz
		}
		pt := p.Inferred.Point
		features, err = ps.store.FeaturesInBox(pt.Lat-latFuzz, pt.Long-latFuzz, pt.Lat+longFuzz, pt.Long+longFuzz)
	case p.County != "":
		features, err = ps.store.FeaturesByCounty(p.County)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	ps.populateAreas(p, features)

	if p.Locality == "" && p.Town == "" {
		features, err = ps.store.FeaturesByNames(splitCommaList(p.Remainder))
		if err != nil {
			return err
		}
		ps.populateAreas(p, features)
		if p.County != "" && (p.Locality != "" || p.Town != "") {
			p.addError(ErrBadCounty)
		}
	}
	return nil
}

// populateAreas partitions features into town and locality candidates and
// matches them against the buffer. Features are ordered farthest-first so
// that when one name appears twice in the window, the nearest instance is
// written last and wins.
func (ps *Parser) populateAreas(p *ParsedAddress, features []gazetteer.FeatureRecord) {
	if p.Inferred.Point != nil {
		pt := *p.Inferred.Point
		sort.SliceStable(features, func(i, j int) bool {
			return grid.DistSq(features[i].Location.Lat, features[i].Location.Long, pt.Lat, pt.Long) >
				grid.DistSq(features[j].Location.Lat, features[j].Location.Long, pt.Lat, pt.Long)
		})
	}

	towns := make(map[string]gazetteer.FeatureRecord)
	localities := make(map[string]gazetteer.FeatureRecord)
	for _, f := range features {
		switch f.Code {
		case gazetteer.FeatureTown:
			for _, name := range strings.Split(f.Name, "/") {
				towns[strings.ToUpper(name)] = f
			}
		case gazetteer.FeatureLocality:
			for _, name := range strings.Split(f.Name, "/") {
				localities[strings.ToUpper(name)] = f
			}
		}
	}

	ps.populateFromList(p, FieldTown, sortedKeys(towns), false)

	// Drop localities outside the matched town's county, or localities
	// from a completely different part of the country creep in.
	if p.Town != "" {
		town := towns[strings.ToUpper(p.Town)]
		for name, locality := range localities {
			if locality.FullCounty != town.FullCounty {
				delete(localities, name)
			}
		}
	}
	ps.populateFromList(p, FieldLocality, sortedKeys(localities), false)

	// A locality wholly inside a town can swallow the town name; retry
	// with the town text restored to the buffer.
	if p.Town != "" && p.Locality == "" && *p.buffer() != "" {
		buf := p.buffer()
		saved := *buf
		*buf = saved + " " + p.Town
		ps.populateFromList(p, FieldLocality, sortedKeys(localities), false)
		if p.Locality != "" {
			p.Town = ""
		} else {
			*buf = saved
		}
	}

	if p.Inferred.Point != nil &&
		(p.Inferred.Source == SourcePostcode || p.Inferred.Source == SourceStreet) {
		return
	}
	if p.Locality != "" {
		if locality, ok := localities[strings.ToUpper(p.Locality)]; ok {
			loc := locality.Location
			p.Inferred.Point = &loc
			p.Inferred.Source = SourceLocality
			p.Inferred.County = &gazetteer.AreaRecord{FullName: locality.FullCounty}
		}
	} else if p.Town != "" {
		if town, ok := towns[strings.ToUpper(p.Town)]; ok {
			loc := town.Location
			p.Inferred.Point = &loc
			p.Inferred.Source = SourceTown
			p.Inferred.County = &gazetteer.AreaRecord{FullName: town.FullCounty}
		}
	}
}
