// Package parser turns free-text UK addresses into structured records,
// resolving street, area and postcode fields against a gazetteer store and
// tracking how confident each extraction is.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/addressparser/internal/config"
	"github.com/addressparser/internal/debug"
	"github.com/addressparser/internal/gazetteer"
)

// countyExtent is a county bounding box with its precomputed centre.
type countyExtent struct {
	gazetteer.Extent
	Lat  float64
	Long float64
}

// Parser runs the staged extraction pipeline. It is immutable after New
// and safe for concurrent Parse calls; each call owns its ParsedAddress
// exclusively.
type Parser struct {
	store   gazetteer.Store
	pinLat  float64
	pinLong float64
	debug   bool

	counties    map[string]countyExtent // keyed by upper-cased full name
	countyNames []string
	cities      map[string]gazetteer.FeatureRecord // keyed by upper-cased alias
	cityNames   []string
}

// New builds a parser, loading the county extents and city aliases from
// the store once up front.
func New(store gazetteer.Store, settings config.Settings) (*Parser, error) {
	extents, err := store.Counties()
	if err != nil {
		return nil, fmt.Errorf("load counties: %w", err)
	}
	counties := make(map[string]countyExtent, len(extents))
	countyNames := make([]string, 0, len(extents))
	for name, e := range extents {
		counties[strings.ToUpper(name)] = countyExtent{
			Extent: e,
			Lat:    e.MinLat + (e.MaxLat-e.MinLat)/2,
			Long:   e.MinLong + (e.MaxLong-e.MinLong)/2,
		}
		countyNames = append(countyNames, name)
	}

	cityAliases, err := store.Cities()
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	cities := make(map[string]gazetteer.FeatureRecord, len(cityAliases))
	cityNames := make([]string, 0, len(cityAliases))
	for alias, city := range cityAliases {
		cities[strings.ToUpper(alias)] = city
		cityNames = append(cityNames, alias)
	}

	p := &Parser{
		store:       store,
		pinLat:      settings.PinLat,
		pinLong:     settings.PinLong,
		debug:       settings.Debug,
		counties:    counties,
		countyNames: countyNames,
		cities:      cities,
		cityNames:   cityNames,
	}
	sort.Strings(p.countyNames)
	sort.Strings(p.cityNames)
	return p, nil
}

func (ps *Parser) lookupCounty(name string) (countyExtent, bool) {
	c, ok := ps.counties[strings.ToUpper(name)]
	return c, ok
}

// Parse runs the full pipeline over one address. The returned record is
// always populated as far as extraction got; the error is reserved for
// store failures.
func (ps *Parser) Parse(address string) (*ParsedAddress, error) {
	defer debug.Timing(ps.debug, "parse")()

	address = strings.ReplaceAll(address, "’", "'")
	p := &ParsedAddress{
		Address:   address,
		Remainder: address,
		Errors:    []string{},
		Warnings:  []string{},
	}

	if err := ps.populatePostcode(p); err != nil {
		return nil, err
	}

	// Military postcodes have no publishable street-level geography.
	if p.Name != "BFPO" {
		if p.Inferred.Point != nil {
			// Precise point known: look for the street on the grid first,
			// then resolve areas around it.
			if err := ps.populateRoad(p, true); err != nil {
				return nil, err
			}
			ps.populateFromList(p, FieldCounty, ps.countyNames, false)
			ps.populateFromList(p, FieldCity, ps.cityNames, false)
			if err := ps.populateFromArea(p); err != nil {
				return nil, err
			}
			ps.populateEstate(p, &p.Unmatched)
			if p.Street == "" {
				if err := ps.populateRoad(p, false); err != nil {
					return nil, err
				}
			}
		} else {
			ps.populateFromList(p, FieldCounty, ps.countyNames, false)
			ps.populateFromList(p, FieldCity, ps.cityNames, false)
			if err := ps.populateFromArea(p); err != nil {
				return nil, err
			}
			ps.populateEstate(p, &p.Unmatched)
			if err := ps.populateRoad(p, false); err != nil {
				return nil, err
			}
		}

		if p.Street != "" {
			ps.populateDependentStreet(p)
			ps.populateNumber(p)
		} else {
			p.addError(ErrNoStreet)
		}

		if p.Street != "" || p.Locality != "" || p.Town != "" {
			ps.populateEstate(p, &p.Remainder)
			ps.populateName(p)
			ps.populateFloor(p)
			ps.populateFlat(p)
			ps.populateLines(p)
		} else if p.Remainder != "" {
			p.Unmatched = p.Remainder
		}

		if p.City == "" && p.Town == "" && p.Locality == "" {
			p.addError(ErrNoArea)
		}
	}

	p.Remainder = ""

	if p.hasError(ErrBadPostcode) && p.Inferred.Box != nil {
		if err := ps.inferPostcode(p); err != nil {
			return nil, err
		}
	}

	if p.County != "" && !p.hasError(ErrBadPostcode) &&
		(p.Inferred.County == nil || p.Inferred.County.FullName != p.County) {
		p.addError(ErrBadCounty)
	}

	debug.Dump(ps.debug, p)
	return p, nil
}
