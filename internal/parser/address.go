package parser

import (
	"strings"

	"github.com/addressparser/internal/gazetteer"
)

// Source identifies where the inferred coordinates came from. Precision
// rank: postcode > street > locality/town/city > county. Extractors check
// the current source before overwriting so precision never degrades within
// a parse.
type Source string

const (
	SourcePostcode Source = "postcode"
	SourceStreet   Source = "street"
	SourceLocality Source = "locality"
	SourceTown     Source = "town"
	SourceCity     Source = "city"
	SourceCounty   Source = "county"
)

// Field names the address fields resolvable through the candidate matcher.
type Field string

const (
	FieldCounty   Field = "county"
	FieldCity     Field = "city"
	FieldTown     Field = "town"
	FieldLocality Field = "locality"
	FieldStreet   Field = "street"
)

// Error and warning codes appended to a ParsedAddress. Errors flag low
// extraction confidence; the record is still returned. Warnings are
// non-blocking.
const (
	ErrBadPostcode = "BAD_POSTCODE"
	ErrNoStreet    = "NO_STREET"
	ErrNoArea      = "NO_AREA"
	ErrBadStreet   = "BAD_STREET"
	ErrBadCounty   = "BAD_COUNTY"

	WarnUnknownArea            = "UNKNOWN_AREA"
	WarnGuessedEstate          = "GUESSED_ESTATE"
	WarnGuessedDependentStreet = "GUESSED_DEPENDENT_STREET"
)

// badField is the generic fuzzy-resolution error for a field.
func badField(f Field) string {
	return "BAD_" + strings.ToUpper(string(f))
}

// Box is an inferred bounding box.
type Box struct {
	MinLat  float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat  float64 `json:"max_lat" yaml:"max_lat"`
	MinLong float64 `json:"min_long" yaml:"min_long"`
	MaxLong float64 `json:"max_long" yaml:"max_long"`
}

// Inferred is the geocode state derived alongside the typed fields.
type Inferred struct {
	Point   *gazetteer.Point `json:"point,omitempty" yaml:"point,omitempty"`
	Source  Source           `json:"latlong_source,omitempty" yaml:"latlong_source,omitempty"`
	Quality *int             `json:"quality_indicator,omitempty" yaml:"quality_indicator,omitempty"`
	Box     *Box             `json:"box,omitempty" yaml:"box,omitempty"`

	County                  *gazetteer.AreaRecord `json:"county,omitempty" yaml:"county,omitempty"`
	District                *gazetteer.AreaRecord `json:"district,omitempty" yaml:"district,omitempty"`
	Ward                    *gazetteer.AreaRecord `json:"ward,omitempty" yaml:"ward,omitempty"`
	RegionalHealthAuthority *gazetteer.AreaRecord `json:"regional_health_authority,omitempty" yaml:"regional_health_authority,omitempty"`
	HealthAuthority         *gazetteer.AreaRecord `json:"health_authority,omitempty" yaml:"health_authority,omitempty"`

	// Street holds the canonical gazetteer spelling when the street was
	// resolved by fuzzy matching.
	Street string `json:"street,omitempty" yaml:"street,omitempty"`

	// Postcodes holds suggested postcodes, nearest first, when the typed
	// postcode was unknown but a bounding box was derived later.
	Postcodes []string `json:"postcodes,omitempty" yaml:"postcodes,omitempty"`
}

// ParsedAddress is the mutable parse state threaded through every
// extractor, and the final result. Remainder and Unmatched are the two
// shrinking text buffers: Remainder is consumed while no street is known;
// once a street is found, candidate matching consumes Unmatched instead.
type ParsedAddress struct {
	Address   string `json:"address" yaml:"address"`
	Remainder string `json:"-" yaml:"-"`
	Unmatched string `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`

	Postcode        string   `json:"postcode,omitempty" yaml:"postcode,omitempty"`
	Street          string   `json:"street,omitempty" yaml:"street,omitempty"`
	DependentStreet string   `json:"dependent_street,omitempty" yaml:"dependent_street,omitempty"`
	Number          string   `json:"number,omitempty" yaml:"number,omitempty"`
	Estate          string   `json:"estate,omitempty" yaml:"estate,omitempty"`
	Name            string   `json:"name,omitempty" yaml:"name,omitempty"`
	Floor           string   `json:"floor,omitempty" yaml:"floor,omitempty"`
	Flat            string   `json:"flat,omitempty" yaml:"flat,omitempty"`
	County          string   `json:"county,omitempty" yaml:"county,omitempty"`
	City            string   `json:"city,omitempty" yaml:"city,omitempty"`
	Town            string   `json:"town,omitempty" yaml:"town,omitempty"`
	Locality        string   `json:"locality,omitempty" yaml:"locality,omitempty"`
	Lines           []string `json:"lines,omitempty" yaml:"lines,omitempty"`

	Inferred Inferred `json:"inferred" yaml:"inferred"`

	Errors   []string `json:"errors" yaml:"errors"`
	Warnings []string `json:"warnings" yaml:"warnings"`
}

// buffer returns the active text buffer: Unmatched once a street is known,
// Remainder before that.
func (p *ParsedAddress) buffer() *string {
	if p.Street != "" {
		return &p.Unmatched
	}
	return &p.Remainder
}

func (p *ParsedAddress) setField(f Field, value string) {
	switch f {
	case FieldCounty:
		p.County = value
	case FieldCity:
		p.City = value
	case FieldTown:
		p.Town = value
	case FieldLocality:
		p.Locality = value
	case FieldStreet:
		p.Street = value
	}
}

func (p *ParsedAddress) addError(code string) {
	p.Errors = append(p.Errors, code)
}

func (p *ParsedAddress) addWarning(code string) {
	p.Warnings = append(p.Warnings, code)
}

func (p *ParsedAddress) hasError(code string) bool {
	for _, e := range p.Errors {
		if e == code {
			return true
		}
	}
	return false
}
