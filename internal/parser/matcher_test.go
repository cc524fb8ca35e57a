package parser

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addressparser/internal/config"
)

func TestMatchExact(t *testing.T) {
	tests := []struct {
		name   string
		buf    string
		item   string
		street bool
		ok     bool
		prefix string
		text   string
		suffix string
	}{
		{
			name: "whole buffer", buf: "London", item: "LONDON",
			ok: true, prefix: "", text: "London", suffix: "",
		},
		{
			name: "with prefix and suffix", buf: "10 High Road, London, Weird Suffix", item: "LONDON",
			ok: true, prefix: "10 High Road, ", text: "London", suffix: ", Weird Suffix",
		},
		{
			name: "prefix must end in separator", buf: "Hollondon", item: "LONDON",
			ok: false,
		},
		{
			name: "suffix requires a comma", buf: "2 High Street", item: "HIGH",
			street: true, ok: false,
		},
		{
			name: "lazy prefix takes earliest occurrence", buf: "Richmond Road, Richmond, Surrey", item: "RICHMOND",
			ok: true, prefix: "Richmond Road, ", text: "Richmond", suffix: ", Surrey",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := matchExact(tt.buf, tt.item, tt.street)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.prefix, m.prefix)
			assert.Equal(t, tt.text, m.text)
			assert.Equal(t, tt.suffix, m.suffix)
		})
	}
}

func TestMatchExactLazySuffix(t *testing.T) {
	// The earliest occurrence wins for non-street fields even when a
	// later, cleaner one exists.
	m, ok := matchExact("Richmond Road, Richmond", "RICHMOND", false)
	assert.True(t, ok)
	assert.Equal(t, "Richmond Road, ", m.prefix)
	assert.Equal(t, "Richmond", m.text)
}

func TestMatchFuzzy(t *testing.T) {
	tests := []struct {
		name string
		buf  string
		item string
		ok   bool
		text string
	}{
		{
			name: "typo in last word", buf: "10 Downing Streat, London", item: "DOWNING STREET",
			ok: true, text: "Downing Streat",
		},
		{
			name: "trailing words optional", buf: "12 Great Eastern", item: "GREAT EASTERN ROAD",
			ok: true, text: "Great Eastern",
		},
		{
			name: "punctuation optional", buf: "1 St Johns Road", item: "ST. JOHN'S ROAD",
			ok: true, text: "St Johns Road",
		},
		{
			name: "first word is required", buf: "1 Eastern Road", item: "GREAT EASTERN ROAD",
			ok: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := matchFuzzy(tt.buf, tt.item)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.text, m.text)
			}
		})
	}
}

func TestFuzzyPattern(t *testing.T) {
	assert.Equal(t, `DOWNING ?(?:STREET)?`, fuzzyPattern("DOWNING STREET"))
	assert.Equal(t, `ST\.? ?(?:JOHN'?S)? ?(?:ROAD)?`, fuzzyPattern("ST. JOHN'S ROAD"))
}

func TestPopulateFromListEarliestStartWins(t *testing.T) {
	ps := newTestParser(t)
	p := &ParsedAddress{Remainder: "3 Oak Park Lane"}

	ps.populateFromList(p, FieldStreet, []string{"OAK PARK LANE", "PARK LANE"}, true)

	assert.Equal(t, "Oak Park Lane", p.Street)
	assert.Equal(t, "3", p.Remainder)
}

func TestPopulateFromListShortestMatchWins(t *testing.T) {
	ps := newTestParser(t)
	p := &ParsedAddress{Remainder: "7 Abbey, Road"}

	ps.populateFromList(p, FieldStreet, []string{"ABBEY", "ABBEY, ROAD"}, true)

	assert.Equal(t, "Abbey", p.Street)
	assert.Equal(t, "7", p.Remainder)
	assert.Equal(t, "Road", p.Unmatched)
}

func TestPopulateFromListFuzzyCanonical(t *testing.T) {
	ps := newTestParser(t)
	p := &ParsedAddress{Remainder: "1 Station Roads"}

	ps.populateFromList(p, FieldStreet, []string{"STATION ROAD", "STATION ROAD WEST"}, false)

	assert.Equal(t, "Station Roads", p.Street)
	assert.Equal(t, "STATION ROAD", p.Inferred.Street)
	assert.Contains(t, p.Errors, "BAD_STREET")
	assert.Equal(t, "1", p.Remainder)
}

func TestPopulateFromListExactDisablesFuzzy(t *testing.T) {
	ps := newTestParser(t)
	p := &ParsedAddress{Remainder: "1 Station Roads"}

	ps.populateFromList(p, FieldStreet, []string{"STATION ROAD"}, true)

	assert.Empty(t, p.Street)
	assert.Equal(t, "1 Station Roads", p.Remainder)
}

func TestPopulateFromListSuffixOverflow(t *testing.T) {
	ps := newTestParser(t)
	p := &ParsedAddress{Remainder: "10 High Road, London, Weird Suffix"}

	ps.populateFromList(p, FieldCity, []string{"London"}, false)

	assert.Equal(t, "London", p.City)
	assert.Equal(t, "10 High Road", p.Remainder)
	assert.Equal(t, "Weird Suffix", p.Unmatched)
	assert.Contains(t, p.Warnings, WarnUnknownArea)
	assert.Equal(t, SourceCity, p.Inferred.Source)
}

func TestPopulateFromListCountyReassignment(t *testing.T) {
	ps := newTestParser(t)
	p := &ParsedAddress{Remainder: "something", County: "York"}

	ps.populateFromList(p, FieldCity, []string{"London", "York"}, false)

	assert.Equal(t, "York", p.City)
	assert.Empty(t, p.County)
	assert.Equal(t, "something", p.Remainder)
}

func TestPopulateFromListBufferSwitch(t *testing.T) {
	// Once a street is set, matching consumes the unmatched overflow, not
	// the remainder.
	ps := newTestParser(t)
	p := &ParsedAddress{Remainder: "10", Street: "Downing Street", Unmatched: "London"}

	ps.populateFromList(p, FieldCity, []string{"London"}, false)

	assert.Equal(t, "London", p.City)
	assert.Equal(t, "10", p.Remainder)
	assert.Empty(t, p.Unmatched)
}

func TestPopulateFromListDebugTrace(t *testing.T) {
	ps, err := New(buildTestStore(), config.Settings{
		PinLat:  testPinLat,
		PinLong: testPinLong,
		Debug:   true,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	p := &ParsedAddress{Remainder: "10 High Road, London"}
	ps.populateFromList(p, FieldCity, []string{"London"}, false)

	if !strings.Contains(buf.String(), `city in "10 High Road, London"`) {
		t.Errorf("missing stage trace, got %q", buf.String())
	}
}
