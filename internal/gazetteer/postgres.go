package gazetteer

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lib/pq"

	"github.com/addressparser/internal/grid"
)

// Postgres implements Store over the gazetteer tables loaded into
// PostgreSQL: postcodes, admin_areas, features and roads. The roads and
// postcodes tables carry lat_cell/long_cell columns pinned with the same
// PIN_LAT/PIN_LONG the parser runs with.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects using the PG* environment variables and verifies
// the connection.
func OpenPostgres() (*Postgres, error) {
	host := envOrDefault("PGHOST", "localhost")
	port := envOrDefault("PGPORT", "5432")
	user := envOrDefault("PGUSER", "postgres")
	password := envOrDefault("PGPASSWORD", "postgres")
	dbname := envOrDefault("PGDATABASE", "gazetteer")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Postgres{db: db}, nil
}

// NewPostgres wraps an existing connection.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// DB exposes the underlying connection for health checks.
func (s *Postgres) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Postgres) Close() error {
	return s.db.Close()
}

func (s *Postgres) Postcode(code string) (*PostcodeRecord, error) {
	var r PostcodeRecord
	err := s.db.QueryRow(`
		SELECT postcode, latitude, longitude, quality_indicator,
		       county_code, district_code, ward_code, regional_ha_code, ha_code
		FROM postcodes WHERE postcode = $1`, code).
		Scan(&r.Code, &r.Location.Lat, &r.Location.Long, &r.QualityIndicator,
			&r.CountyCode, &r.DistrictCode, &r.WardCode, &r.RegionalHACode, &r.HACode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postcode lookup %q: %w", code, err)
	}
	return &r, nil
}

func (s *Postgres) Area(code string) (*AreaRecord, error) {
	var r AreaRecord
	err := s.db.QueryRow(`SELECT code, full_name, tier FROM admin_areas WHERE code = $1`, code).
		Scan(&r.Code, &r.FullName, &r.Tier)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("area lookup %q: %w", code, err)
	}
	return &r, nil
}

func (s *Postgres) FeaturesInBox(minLat, minLong, maxLat, maxLong float64) ([]FeatureRecord, error) {
	rows, err := s.db.Query(`
		SELECT name, latitude, longitude, full_county, f_code
		FROM features
		WHERE latitude >= $1 AND latitude <= $2
		  AND longitude >= $3 AND longitude < $4`,
		minLat, maxLat, minLong, maxLong)
	if err != nil {
		return nil, fmt.Errorf("features in box: %w", err)
	}
	return scanFeatures(rows)
}

func (s *Postgres) FeaturesByCounty(county string) ([]FeatureRecord, error) {
	rows, err := s.db.Query(`
		SELECT name, latitude, longitude, full_county, f_code
		FROM features WHERE full_county = $1`, county)
	if err != nil {
		return nil, fmt.Errorf("features by county %q: %w", county, err)
	}
	return scanFeatures(rows)
}

func (s *Postgres) FeaturesByNames(names []string) ([]FeatureRecord, error) {
	if len(names) == 0 {
		return nil, nil
	}
	// Aliased names are stored "/"-joined, so match against the expanded
	// alias array.
	rows, err := s.db.Query(`
		SELECT name, latitude, longitude, full_county, f_code
		FROM features
		WHERE string_to_array(name, '/') && $1::text[]`, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("features by names: %w", err)
	}
	return scanFeatures(rows)
}

func (s *Postgres) RoadsInCells(keys []grid.Key) ([]RoadRecord, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	query := `
		SELECT name, centre_lat, centre_long, min_lat, max_lat, min_long, max_long
		FROM roads WHERE (lat_cell, long_cell) IN ` + cellPredicate(len(keys))
	rows, err := s.db.Query(query, cellArgs(keys)...)
	if err != nil {
		return nil, fmt.Errorf("roads in cells: %w", err)
	}
	return scanRoads(rows)
}

func (s *Postgres) RoadsByName(name string) ([]RoadRecord, error) {
	rows, err := s.db.Query(`
		SELECT name, centre_lat, centre_long, min_lat, max_lat, min_long, max_long
		FROM roads WHERE upper(name) = upper($1)`, name)
	if err != nil {
		return nil, fmt.Errorf("roads by name %q: %w", name, err)
	}
	return scanRoads(rows)
}

func (s *Postgres) PostcodesInCells(keys []grid.Key) ([]PostcodeRecord, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	query := `
		SELECT postcode, latitude, longitude, quality_indicator,
		       county_code, district_code, ward_code, regional_ha_code, ha_code
		FROM postcodes WHERE (lat_cell, long_cell) IN ` + cellPredicate(len(keys))
	rows, err := s.db.Query(query, cellArgs(keys)...)
	if err != nil {
		return nil, fmt.Errorf("postcodes in cells: %w", err)
	}
	defer rows.Close()

	var records []PostcodeRecord
	for rows.Next() {
		var r PostcodeRecord
		if err := rows.Scan(&r.Code, &r.Location.Lat, &r.Location.Long, &r.QualityIndicator,
			&r.CountyCode, &r.DistrictCode, &r.WardCode, &r.RegionalHACode, &r.HACode); err != nil {
			return nil, fmt.Errorf("scan postcode: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Postgres) Counties() (map[string]Extent, error) {
	rows, err := s.db.Query(`
		SELECT full_county, MIN(latitude), MAX(latitude), MIN(longitude), MAX(longitude)
		FROM features
		WHERE full_county <> ''
		GROUP BY full_county`)
	if err != nil {
		return nil, fmt.Errorf("county extents: %w", err)
	}
	defer rows.Close()

	counties := make(map[string]Extent)
	for rows.Next() {
		var name string
		var e Extent
		if err := rows.Scan(&name, &e.MinLat, &e.MaxLat, &e.MinLong, &e.MaxLong); err != nil {
			return nil, fmt.Errorf("scan county extent: %w", err)
		}
		counties[name] = e
	}
	return counties, rows.Err()
}

func (s *Postgres) Cities() (map[string]FeatureRecord, error) {
	rows, err := s.db.Query(`
		SELECT name, latitude, longitude, full_county, f_code
		FROM features WHERE f_code = $1`, FeatureCity)
	if err != nil {
		return nil, fmt.Errorf("cities: %w", err)
	}
	features, err := scanFeatures(rows)
	if err != nil {
		return nil, err
	}
	return expandCityAliases(features), nil
}

func scanFeatures(rows *sql.Rows) ([]FeatureRecord, error) {
	defer rows.Close()

	var features []FeatureRecord
	for rows.Next() {
		var f FeatureRecord
		if err := rows.Scan(&f.Name, &f.Location.Lat, &f.Location.Long, &f.FullCounty, &f.Code); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

func scanRoads(rows *sql.Rows) ([]RoadRecord, error) {
	defer rows.Close()

	var roads []RoadRecord
	for rows.Next() {
		var r RoadRecord
		if err := rows.Scan(&r.Name, &r.Centre.Lat, &r.Centre.Long,
			&r.MinLat, &r.MaxLat, &r.MinLong, &r.MaxLong); err != nil {
			return nil, fmt.Errorf("scan road: %w", err)
		}
		roads = append(roads, r)
	}
	return roads, rows.Err()
}

// cellPredicate builds the ((…,…),(…,…)) value list for a cell-key IN
// clause with len pairs of placeholders.
func cellPredicate(n int) string {
	pairs := make([]string, n)
	for i := 0; i < n; i++ {
		pairs[i] = fmt.Sprintf("($%d,$%d)", i*2+1, i*2+2)
	}
	return "(" + strings.Join(pairs, ",") + ")"
}

func cellArgs(keys []grid.Key) []interface{} {
	args := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k.Lat, k.Long)
	}
	return args
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
