package config

// Settings holds the parser runtime configuration sourced from the
// environment. PinLat and PinLong are the grid granularities used to bucket
// roads and postcodes for spatial lookup; they must match the values the
// gazetteer tables were loaded with.
type Settings struct {
	PinLat  float64
	PinLong float64
	Debug   bool
}

// Default pin sizes, roughly a 2km cell over southern England.
const (
	DefaultPinLat  = 0.02
	DefaultPinLong = 0.03
)

// FromEnv reads parser settings from the environment.
func FromEnv() Settings {
	return Settings{
		PinLat:  GetEnvFloat("PIN_LAT", DefaultPinLat),
		PinLong: GetEnvFloat("PIN_LONG", DefaultPinLong),
		Debug:   GetEnvBool("PARSE_DEBUG", false),
	}
}
