package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/addressparser/internal/gazetteer"
	"github.com/addressparser/internal/grid"
)

var (
	// reRoadGuess pulls a trailing [number token][name] off the remainder.
	reRoadGuess = regexp.MustCompile(`([0-9]+[^ ]*)? ([^,]+)$`)
	// reRoadSplit strips one leading word off a failed guess, assuming it
	// was a building name.
	reRoadSplit = regexp.MustCompile(`([^ ]+) (.+)$`)
)

// populateRoad resolves the street. With a postcode-derived point, roads
// are fetched from the four grid cells around the point, then from the
// eight second-ring cells, and matched exactly; only if that fails and
// exact was not demanded does it fall back to guessing a road name out of
// the remainder. Without a precise point it goes straight to the guess.
func (ps *Parser) populateRoad(p *ParsedAddress, exact bool) error {
	if p.Inferred.Source != SourcePostcode {
		return ps.guessRoad(p)
	}

	pt := p.Inferred.Point
	if err := ps.lookupRoads(p, grid.Surrounding(pt.Lat, pt.Long, ps.pinLat, ps.pinLong), exact); err != nil {
		return err
	}
	if p.Street == "" {
		if err := ps.lookupRoads(p, grid.Ring(pt.Lat, pt.Long, ps.pinLat, ps.pinLong), exact); err != nil {
			return err
		}
		if p.Street == "" && !exact {
			return ps.guessRoad(p)
		}
	}
	return nil
}

// lookupRoads matches the buffer against every road name found in the
// cells. On a win the road's bounding box is adopted; the point and source
// stay postcode-derived, which outranks a street.
func (ps *Parser) lookupRoads(p *ParsedAddress, keys []grid.Key, exact bool) error {
	records, err := ps.store.RoadsInCells(keys)
	if err != nil {
		return err
	}
	roads := make(map[string]gazetteer.RoadRecord, len(records))
	for _, r := range records {
		if r.Name != "" {
			roads[r.Name] = r
		}
	}

	ps.populateFromList(p, FieldStreet, sortedKeys(roads), exact)
	if p.Street == "" {
		return nil
	}

	// Road names are stored upper-case; after a fuzzy win the canonical
	// spelling is the key.
	key := p.Inferred.Street
	if key == "" {
		key = strings.ToUpper(p.Street)
	}
	if road, ok := roads[key]; ok {
		p.Inferred.Box = &Box{
			MinLat:  road.MinLat,
			MaxLat:  road.MaxLat,
			MinLong: road.MinLong,
			MaxLong: road.MaxLong,
		}
	}
	return nil
}

// guessRoad extracts something that looks like a street name from the
// remainder tail and resolves it by exact name. Failing that it strips a
// leading word (assume a building name), and failing that it tries folding
// a tentatively-matched locality back in, in case the locality was really
// part of the street name. Multiple hits are ranked nearest-first.
func (ps *Parser) guessRoad(p *ParsedAddress) error {
	var roads []gazetteer.RoadRecord
	var name string
	var err error

	if m := reRoadGuess.FindStringSubmatch(p.Remainder); m != nil {
		name = m[2]
		roads, err = ps.store.RoadsByName(strings.ToUpper(name))
		if err != nil {
			return err
		}
	}

	if len(roads) == 0 {
		if m := reRoadSplit.FindStringSubmatch(name); name != "" && m != nil {
			name = m[2]
			roads, err = ps.store.RoadsByName(strings.ToUpper(name))
			if err != nil {
				return err
			}
		} else if p.Locality != "" {
			joined := p.Remainder + ", " + p.Locality
			if m := reRoadGuess.FindStringSubmatch(joined); m != nil {
				name = m[2]
				roads, err = ps.store.RoadsByName(strings.ToUpper(name))
				if err != nil {
					return err
				}
				if len(roads) > 0 {
					p.Remainder = joined
					p.Locality = ""
				}
			}
		}
	}
	if len(roads) == 0 {
		return nil
	}

	var ptLat, ptLong float64
	if p.Inferred.Point != nil {
		ptLat = p.Inferred.Point.Lat
		ptLong = p.Inferred.Point.Long
	}
	sort.SliceStable(roads, func(i, j int) bool {
		return grid.DistSq(roads[i].Centre.Lat, roads[i].Centre.Long, ptLat, ptLong) <
			grid.DistSq(roads[j].Centre.Lat, roads[j].Centre.Long, ptLat, ptLong)
	})
	road := roads[0]

	ps.populateFromList(p, FieldStreet, []string{road.Name}, false)

	if p.Inferred.Source == SourcePostcode {
		// An exact grid match should have found this street; getting here
		// through the guess means the typed street is suspect.
		p.addError(ErrBadStreet)
	} else {
		centre := road.Centre
		p.Inferred.Point = &centre
		p.Inferred.Source = SourceStreet
		p.Inferred.Box = &Box{
			MinLat:  road.MinLat,
			MaxLat:  road.MaxLat,
			MinLong: road.MinLong,
			MaxLong: road.MaxLong,
		}
	}
	return nil
}
