package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addressparser/internal/config"
	"github.com/addressparser/internal/gazetteer"
	"github.com/addressparser/internal/parser"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := gazetteer.NewMemory(0.02, 0.03)
	store.AddPostcode(gazetteer.PostcodeRecord{
		Code:             "SW1A 2AA",
		Location:         gazetteer.Point{Lat: 51.5034, Long: -0.1276},
		QualityIndicator: 10,
	})
	store.AddRoad(gazetteer.RoadRecord{
		Name:   "DOWNING STREET",
		Centre: gazetteer.Point{Lat: 51.5034, Long: -0.1276},
		MinLat: 51.5032, MaxLat: 51.5036, MinLong: -0.1282, MaxLong: -0.1270,
	})
	store.AddFeature(gazetteer.FeatureRecord{
		Name: "London", Code: gazetteer.FeatureCity,
		Location: gazetteer.Point{Lat: 51.5074, Long: -0.1278}, FullCounty: "Greater London",
	})

	p, err := parser.New(store, config.Settings{PinLat: 0.02, PinLong: 0.03})
	require.NoError(t, err)

	return NewServer(Config{Host: "localhost", Port: 0}, p)
}

func postParse(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/parse", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleParse(t *testing.T) {
	s := newTestServer(t)

	rec := postParse(t, s, `{"address": "10 Downing Street, London SW1A 2AA"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var parsed parser.ParsedAddress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	assert.Equal(t, "SW1A 2AA", parsed.Postcode)
	assert.Equal(t, "Downing Street", parsed.Street)
	assert.Equal(t, "10", parsed.Number)
	assert.Equal(t, "London", parsed.City)
}

func TestHandleParseEmptyAddress(t *testing.T) {
	s := newTestServer(t)

	rec := postParse(t, s, `{"address": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.NotEmpty(t, errResp.Error)
}

func TestHandleParseBadJSON(t *testing.T) {
	s := newTestServer(t)

	rec := postParse(t, s, `{"address":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleParseMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/parse", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
