package parser

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/addressparser/internal/gazetteer"
	"github.com/addressparser/internal/grid"
)

var (
	// rePostcode splits a trailing UK postcode off the address: area and
	// district letters/digits, a space, then sector digit plus two
	// letters.
	rePostcode = regexp.MustCompile(`^(.+)(,?\s+)([A-Z][A-Z]?[0-9]([A-Z]|[0-9])? [0-9][A-Z][A-Z])$`)

	reBFPONumber   = regexp.MustCompile(`BFPO ([0-9]+)`)
	reBFPOTrailing = regexp.MustCompile(`(^|[\s,])BFPO\s+[0-9]+\s*$`)
)

// populatePostcode splits the postcode off the address tail and resolves
// it in the gazetteer. A BF-prefixed (military) postcode, or a trailing
// "BFPO n" token, marks the record BFPO and the orchestrator skips every
// later stage. An extracted postcode the gazetteer does not know records
// BAD_POSTCODE and leaves the geocode unset.
func (ps *Parser) populatePostcode(p *ParsedAddress) error {
	if p.Postcode == "" {
		if m := rePostcode.FindStringSubmatch(p.Address); m != nil {
			p.Remainder = trimTrailing(m[1])
			p.Postcode = m[3]
		}
	}

	if strings.HasPrefix(p.Postcode, "BF") ||
		(p.Postcode == "" && reBFPOTrailing.MatchString(p.Address)) {
		p.Name = "BFPO"
		if m := reBFPONumber.FindStringSubmatch(p.Address); m != nil {
			p.Number = m[1]
		}
		return nil
	}

	if p.Postcode == "" {
		return nil
	}

	pc, err := ps.store.Postcode(p.Postcode)
	if errors.Is(err, gazetteer.ErrNotFound) {
		p.addError(ErrBadPostcode)
		return nil
	}
	if err != nil {
		return err
	}

	loc := pc.Location
	quality := pc.QualityIndicator
	p.Inferred.Point = &loc
	p.Inferred.Source = SourcePostcode
	p.Inferred.Quality = &quality

	refs := []struct {
		code string
		dst  **gazetteer.AreaRecord
	}{
		{pc.CountyCode, &p.Inferred.County},
		{pc.DistrictCode, &p.Inferred.District},
		{pc.WardCode, &p.Inferred.Ward},
		{pc.RegionalHACode, &p.Inferred.RegionalHealthAuthority},
		{pc.HACode, &p.Inferred.HealthAuthority},
	}
	for _, ref := range refs {
		if ref.code == "" {
			continue
		}
		area, err := ps.store.Area(ref.code)
		if errors.Is(err, gazetteer.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		*ref.dst = area
	}
	return nil
}

// inferPostcode suggests postcodes for a record whose typed postcode was
// unknown, using the bounding box a later stage derived. Candidates are
// ranked nearest-first and deduplicated; the typed postcode is never
// overwritten.
func (ps *Parser) inferPostcode(p *ParsedAddress) error {
	box := p.Inferred.Box
	keys := grid.Covering(box.MinLat, box.MaxLat, box.MinLong, box.MaxLong, ps.pinLat, ps.pinLong)
	records, err := ps.store.PostcodesInCells(keys)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	var ptLat, ptLong float64
	if p.Inferred.Point != nil {
		ptLat = p.Inferred.Point.Lat
		ptLong = p.Inferred.Point.Long
	}
	sort.SliceStable(records, func(i, j int) bool {
		return grid.DistSq(records[i].Location.Lat, records[i].Location.Long, ptLat, ptLong) <
			grid.DistSq(records[j].Location.Lat, records[j].Location.Long, ptLat, ptLong)
	})

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.Code] {
			continue
		}
		seen[r.Code] = true
		p.Inferred.Postcodes = append(p.Inferred.Postcodes, r.Code)
	}
	return nil
}
