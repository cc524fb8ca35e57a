// Package grid indexes points on a fixed latitude/longitude granularity.
// Roads and postcodes in the gazetteer are pinned to grid cells at load
// time so that "what is near this point" becomes a handful of exact key
// lookups instead of a spatial scan.
package grid

import "math"

// Key identifies one grid cell.
type Key struct {
	Lat  int
	Long int
}

// Cell returns the cell containing the point, flooring on both axes. This
// is the bucketing rule the gazetteer loader uses.
func Cell(lat, long, pinLat, pinLong float64) Key {
	return Key{
		Lat:  int(math.Floor(lat / pinLat)),
		Long: int(math.Floor(long / pinLong)),
	}
}

// Surrounding returns the four cells whose corners enclose the point: the
// floor/ceil combinations of each axis. When the point sits inside a cell
// (the common case) two or more keys coincide; callers treat the slice as a
// key set for an IN query, so duplicates are harmless.
func Surrounding(lat, long, pinLat, pinLong float64) []Key {
	minLat := int(math.Floor(lat / pinLat))
	maxLat := int(math.Ceil(lat / pinLat))
	minLong := int(math.Floor(long / pinLong))
	maxLong := int(math.Ceil(long / pinLong))
	return []Key{
		{minLat, minLong},
		{minLat, maxLong},
		{maxLat, minLong},
		{maxLat, maxLong},
	}
}

// Ring returns the eight second-ring cells around the point, used to widen
// a road search when the surrounding cells found nothing.
func Ring(lat, long, pinLat, pinLong float64) []Key {
	minLat := int(math.Floor(lat / pinLat))
	maxLat := int(math.Ceil(lat / pinLat))
	minLong := int(math.Floor(long / pinLong))
	maxLong := int(math.Ceil(long / pinLong))
	return []Key{
		{minLat - 1, minLong},
		{minLat - 1, maxLong},
		{minLat, minLong - 1},
		{minLat, maxLong + 1},
		{maxLat + 1, minLong},
		{maxLat + 1, maxLong},
		{maxLat, minLong - 1},
		{maxLat, maxLong + 1},
	}
}

// Covering returns every cell overlapping the bounding box, row by row.
func Covering(minLat, maxLat, minLong, maxLong, pinLat, pinLong float64) []Key {
	loLat := int(math.Floor(minLat / pinLat))
	hiLat := int(math.Ceil(maxLat / pinLat))
	loLong := int(math.Floor(minLong / pinLong))
	hiLong := int(math.Ceil(maxLong / pinLong))

	var keys []Key
	for lat := loLat; lat <= hiLat; lat++ {
		for long := loLong; long <= hiLong; long++ {
			keys = append(keys, Key{lat, long})
		}
	}
	return keys
}

// DistSq returns the squared planar distance between two points. Good
// enough for ranking candidates by proximity; never used as a real
// distance.
func DistSq(aLat, aLong, bLat, bLong float64) float64 {
	x := aLat - bLat
	y := aLong - bLong
	return x*x + y*y
}
