package gazetteer

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat  float64 `json:"lat" yaml:"lat"`
	Long float64 `json:"long" yaml:"long"`
}

// Extent is a latitude/longitude bounding box.
type Extent struct {
	MinLat  float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat  float64 `json:"max_lat" yaml:"max_lat"`
	MinLong float64 `json:"min_long" yaml:"min_long"`
	MaxLong float64 `json:"max_long" yaml:"max_long"`
}

// PostcodeRecord is one unit postcode with its point, positional quality
// indicator and the administrative area codes it falls in. Empty codes mean
// the postcode has no such area (Welsh postcodes carry no county, for
// example).
type PostcodeRecord struct {
	Code             string
	Location         Point
	QualityIndicator int
	CountyCode       string
	DistrictCode     string
	WardCode         string
	RegionalHACode   string
	HACode           string
}

// AreaRecord is an administrative area (county, district, ward, health
// authority) keyed by its government code.
type AreaRecord struct {
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
	FullName string `json:"full_name" yaml:"full_name"`
	Tier     string `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// FeatureRecord is a named settlement feature. Name may hold several
// "/"-separated aliases for the same place. Code classifies the feature:
// "C" city, "T" town, "O" other locality.
type FeatureRecord struct {
	Name       string
	Location   Point
	FullCounty string
	Code       string
}

// RoadRecord is one named road with its centroid and bounding box.
type RoadRecord struct {
	Name    string
	Centre  Point
	MinLat  float64
	MaxLat  float64
	MinLong float64
	MaxLong float64
}

// Feature classification codes.
const (
	FeatureCity     = "C"
	FeatureTown     = "T"
	FeatureLocality = "O"
)
