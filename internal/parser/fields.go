package parser

import (
	"regexp"
	"strings"
)

var (
	reEstate = regexp.MustCompile(`^(.+,\s+)?((([A-Z]?[0-9][-\.0-9a-zA-Z]*)\s+)?([^,]+\s(Business Park|Industrial Estate|Industrial Park)))$`)

	reDependentStreet = regexp.MustCompile(`^([^ ]+,?\s+)([^ ,]+(\s[^ ,]+)*\s(Road|Street|Hill|Avenue|Mews|Park|Parade|Square|Court))$`)

	reNumber = regexp.MustCompile(`^(.+(\s|,))?([0-9]+[a-zA-Z]*(-[0-9]+[a-zA-Z]*)?)$`)

	reNameTail = regexp.MustCompile(`^(.+,\s*)?([^,]+)$`)
	reNameSkip = regexp.MustCompile(`(?i)\b(floor|flat|unit)\b`)
	reNameConj = regexp.MustCompile(`\s(&|and)\s`)
	reNameNum  = regexp.MustCompile(`^([^ ]?[0-9][^ ]*) (.+ .+)$`)

	reFloor = regexp.MustCompile(`(?i)^(.+(\s|,))?([0-9]+[a-zA-Z]* Fl(oo)?r|Fl(oo)?r [0-9]+[a-zA-Z]*)$`)

	reFlat = regexp.MustCompile(`(?i)^(.+(\s|,))??(([^,]+ )?(Flat|Unit)( [^,]+)?|[-0-9\.]+)$`)

	reLineConj = regexp.MustCompile(`^(.+\s(&|and)\s[^,]+)(.*)$`)
)

// populateEstate trims a trailing "<number> <name> Business Park"-style
// segment from the buffer. Estate designations are not in the gazetteer,
// so this is always a guess.
func (ps *Parser) populateEstate(p *ParsedAddress, buf *string) {
	m := reEstate.FindStringSubmatch(*buf)
	if m == nil {
		return
	}
	*buf = trimTrailing(m[1])
	if m[4] != "" {
		p.Number = m[4]
	}
	p.Estate = m[5]
	p.addWarning(WarnGuessedEstate)
}

// populateDependentStreet trims a secondary street-type segment sitting
// after a single leading token.
func (ps *Parser) populateDependentStreet(p *ParsedAddress) {
	m := reDependentStreet.FindStringSubmatch(p.Remainder)
	if m == nil {
		return
	}
	p.Remainder = trimTrailing(m[1])
	p.DependentStreet = m[2]
	p.addWarning(WarnGuessedDependentStreet)
}

// populateNumber trims a trailing numeric token, with optional letter
// suffix or hyphenated range.
func (ps *Parser) populateNumber(p *ParsedAddress) {
	m := reNumber.FindStringSubmatch(p.Remainder)
	if m == nil {
		return
	}
	p.Remainder = trimTrailing(m[1])
	p.Number = m[3]
}

// populateName takes the trailing comma-separated segment as a building
// name, unless it names a floor/flat/unit. A segment containing a
// conjunction swallows the whole remainder; a segment led by a numeric
// token gives the token back to the remainder.
func (ps *Parser) populateName(p *ParsedAddress) {
	m := reNameTail.FindStringSubmatch(p.Remainder)
	if m == nil || reNameSkip.MatchString(m[2]) {
		return
	}
	if reNameConj.MatchString(m[2]) {
		p.Name = p.Remainder
		p.Remainder = ""
		return
	}
	n := reNameNum.FindStringSubmatch(m[2])
	p.Remainder = m[1]
	if n != nil {
		p.Remainder += n[1]
	}
	p.Remainder = trimTrailing(p.Remainder)
	if n != nil {
		p.Name = n[2]
	} else {
		p.Name = m[2]
	}
}

// populateFloor trims a trailing "2nd Floor" / "Floor 2" style segment.
func (ps *Parser) populateFloor(p *ParsedAddress) {
	m := reFloor.FindStringSubmatch(p.Remainder)
	if m == nil {
		return
	}
	p.Remainder = trimTrailing(m[1])
	p.Floor = m[3]
}

// populateFlat trims a trailing flat/unit designation, or a bare numeric
// token.
func (ps *Parser) populateFlat(p *ParsedAddress) {
	m := reFlat.FindStringSubmatch(p.Remainder)
	if m == nil {
		return
	}
	p.Remainder = trimTrailing(m[1])
	p.Flat = m[3]
}

// populateLines splits whatever text is left into ordered free-text lines:
// conjunction-joined segments first, then on commas. Iterative rather than
// recursive so pathological input cannot blow the stack.
func (ps *Parser) populateLines(p *ParsedAddress) {
	for p.Remainder != "" {
		m := reLineConj.FindStringSubmatch(p.Remainder)
		if m == nil {
			break
		}
		p.Lines = append(p.Lines, m[1])
		p.Remainder = trimLead(m[3])
	}
	if p.Remainder == "" {
		return
	}
	for _, line := range strings.Split(p.Remainder, ",") {
		p.Lines = append(p.Lines, strings.TrimSpace(line))
	}
	p.Remainder = ""
}
