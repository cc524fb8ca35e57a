package parser

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/addressparser/internal/debug"
	"github.com/addressparser/internal/gazetteer"
)

// candidateMatch is one way of reading the buffer as
// [prefix][candidate][suffix].
type candidateMatch struct {
	prefix string
	text   string
	suffix string
}

// matchExact matches the buffer as [prefix][item][suffix]: prefix is any
// leading text ending in whitespace or a comma, item is matched literally
// and case-insensitively, suffix is anything after a following comma. For
// street the optional prefix is greedy (prefer the trailing occurrence);
// for every other field it is lazy (prefer the earliest).
func matchExact(buf, item string, street bool) (candidateMatch, bool) {
	opt := "??"
	if street {
		opt = "?"
	}
	re := regexp.MustCompile(`(?i)^(.+(\s+|,\s*))` + opt + `(` + regexp.QuoteMeta(item) + `)(,\s*.+)?$`)
	m := re.FindStringSubmatch(buf)
	if m == nil {
		return candidateMatch{}, false
	}
	return candidateMatch{prefix: m[1], text: m[3], suffix: m[4]}, true
}

// matchFuzzy relaxes the match for street names: every word after the
// first is optional, punctuation is optional, and the final matched word
// may run on into arbitrary non-separator characters, tolerating
// truncation and typos.
func matchFuzzy(buf, item string) (candidateMatch, bool) {
	re := regexp.MustCompile(`(?i)^(.+(\s+|,\s*))??(` + fuzzyPattern(item) + `[^, ]*)(,\s*.+)?$`)
	m := re.FindStringSubmatch(buf)
	if m == nil || m[3] == "" {
		return candidateMatch{}, false
	}
	return candidateMatch{prefix: m[1], text: m[3], suffix: m[4]}, true
}

func fuzzyPattern(item string) string {
	words := strings.Split(item, " ")
	parts := make([]string, 0, len(words))
	for i, w := range words {
		var b strings.Builder
		for _, r := range w {
			b.WriteString(regexp.QuoteMeta(string(r)))
			if unicode.IsPunct(r) {
				b.WriteString("?")
			}
		}
		word := b.String()
		if i > 0 {
			word = "(?:" + word + ")?"
		}
		parts = append(parts, word)
	}
	return strings.Join(parts, " ?")
}

// populateFromList finds the best occurrence of a known name in the active
// buffer and assigns it to field. At most one match is applied: the one
// with the shortest prefix, then the shortest matched text. A fuzzy pass
// runs for street only, when no exact match was found and exact was not
// demanded; a fuzzy win records the closest canonical spelling and a
// BAD_<FIELD> error.
func (ps *Parser) populateFromList(p *ParsedAddress, field Field, list []string, exact bool) {
	// A county name that also names a city or town was misassigned: move
	// it over.
	if p.County != "" && (field == FieldCity || field == FieldTown) && containsFold(list, p.County) {
		p.setField(field, p.County)
		p.County = ""
		return
	}
	if len(list) == 0 {
		return
	}

	buf := p.buffer()
	debug.Output(ps.debug, "%s in %q", field, *buf)

	var matches []candidateMatch
	for _, item := range list {
		if m, ok := matchExact(*buf, item, field == FieldStreet); ok {
			matches = append(matches, m)
		}
	}

	// No exact street? Try one that is named something similar.
	originals := make(map[string][]string)
	if len(matches) == 0 && field == FieldStreet && !exact {
		for _, item := range list {
			if m, ok := matchFuzzy(*buf, item); ok {
				matches = append(matches, m)
				originals[m.text] = append(originals[m.text], item)
			}
		}
	}
	if len(matches) == 0 {
		return
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if len(matches[i].prefix) != len(matches[j].prefix) {
			return len(matches[i].prefix) < len(matches[j].prefix)
		}
		return len(matches[i].text) < len(matches[j].text)
	})
	m := matches[0]

	*buf = trimSep(m.prefix)
	p.setField(field, m.text)

	if cands := originals[m.text]; len(cands) > 0 {
		sort.SliceStable(cands, func(i, j int) bool {
			return levenshtein(strings.ToUpper(cands[i]), strings.ToUpper(m.text)) <
				levenshtein(strings.ToUpper(cands[j]), strings.ToUpper(m.text))
		})
		p.Inferred.Street = cands[0]
		p.addError(badField(field))
	}

	if !(p.Inferred.Point != nil && p.Inferred.Source == SourcePostcode) {
		switch field {
		case FieldCity:
			if city, ok := ps.cities[strings.ToUpper(p.City)]; ok {
				loc := city.Location
				p.Inferred.Point = &loc
				p.Inferred.Source = SourceCity
				p.Inferred.County = &gazetteer.AreaRecord{FullName: city.FullCounty}
			}
		case FieldCounty:
			if county, ok := ps.lookupCounty(p.County); ok {
				p.Inferred.Point = &gazetteer.Point{Lat: county.Lat, Long: county.Long}
				p.Inferred.Source = SourceCounty
				p.Inferred.Box = &Box{
					MinLat:  county.MinLat,
					MaxLat:  county.MaxLat,
					MinLong: county.MinLong,
					MaxLong: county.MaxLong,
				}
			}
		}
	}

	if m.suffix != "" {
		p.Unmatched += trimLead(m.suffix)
		if p.Street == "" {
			p.addWarning(WarnUnknownArea)
		}
	}
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
