package geo

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

// Point represents a geographic coordinate (WGS 84)
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsUnset reports whether the point is the backend's "no location recorded"
// sentinel. The platform stores (0,0) when a client never set an address pin,
// so an exact zero pair is never treated as a real coordinate.
func (p Point) IsUnset() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

// WKT POINT(lng lat), case-insensitive, whitespace-tolerant
var wktPointRe = regexp.MustCompile(`(?i)POINT\s*\(\s*(-?[\d.]+)\s+(-?[\d.]+)\s*\)`)

// geoJSONPoint matches the PostGIS-style location_point object shape.
// Coordinates are longitude-first on the wire.
type geoJSONPoint struct {
	Coordinates []float64 `json:"coordinates"`
}

// ParsePoint decodes a raw location_point value into a Point. The platform
// returns locations in two shapes depending on which service produced the
// record: a GeoJSON-like object {coordinates: [lng, lat]} or a WKT string
// "POINT(lng lat)". Anything else (absent field, null, garbage, non-finite
// components) yields nil. ParsePoint never fails loudly - location is a
// best-effort enrichment and a malformed point must not abort the record.
func ParsePoint(raw json.RawMessage) *Point {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var obj geoJSONPoint
	if err := json.Unmarshal(raw, &obj); err == nil && len(obj.Coordinates) >= 2 {
		lng, lat := obj.Coordinates[0], obj.Coordinates[1]
		if isFinite(lat) && isFinite(lng) {
			return &Point{Latitude: lat, Longitude: lng}
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if m := wktPointRe.FindStringSubmatch(s); m != nil {
			lng, errLng := strconv.ParseFloat(m[1], 64)
			lat, errLat := strconv.ParseFloat(m[2], 64)
			if errLng == nil && errLat == nil && isFinite(lat) && isFinite(lng) {
				return &Point{Latitude: lat, Longitude: lng}
			}
		}
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
