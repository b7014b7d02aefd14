package geo

import (
	"encoding/json"
	"testing"
)

func TestParsePointGeoJSON(t *testing.T) {
	p := ParsePoint(json.RawMessage(`{"coordinates": [106.700806, 10.776889]}`))
	if p == nil {
		t.Fatal("expected point, got nil")
	}
	// coordinates are longitude-first on the wire
	if p.Latitude != 10.776889 || p.Longitude != 106.700806 {
		t.Errorf("got (%v, %v), want (10.776889, 106.700806)", p.Latitude, p.Longitude)
	}
}

func TestParsePointGeoJSONExtraElements(t *testing.T) {
	p := ParsePoint(json.RawMessage(`{"coordinates": [105.8342, 21.0278, 0]}`))
	if p == nil {
		t.Fatal("expected point, got nil")
	}
	if p.Latitude != 21.0278 || p.Longitude != 105.8342 {
		t.Errorf("got (%v, %v), want (21.0278, 105.8342)", p.Latitude, p.Longitude)
	}
}

func TestParsePointWKT(t *testing.T) {
	tests := []struct {
		raw      string
		lat, lng float64
	}{
		{`"POINT(10.5 20.25)"`, 20.25, 10.5},
		{`"point(10.5 20.25)"`, 20.25, 10.5},
		{`"POINT( -121.8866   37.3329 )"`, 37.3329, -121.8866},
		{`"SRID=4326;POINT(105.8342 21.0278)"`, 21.0278, 105.8342},
	}
	for _, tt := range tests {
		p := ParsePoint(json.RawMessage(tt.raw))
		if p == nil {
			t.Errorf("ParsePoint(%s) = nil, want point", tt.raw)
			continue
		}
		if p.Latitude != tt.lat || p.Longitude != tt.lng {
			t.Errorf("ParsePoint(%s) = (%v, %v), want (%v, %v)",
				tt.raw, p.Latitude, p.Longitude, tt.lat, tt.lng)
		}
	}
}

func TestParsePointMalformed(t *testing.T) {
	tests := []string{
		``,
		`null`,
		`"garbage"`,
		`"POINT()"`,
		`"POINT(abc def)"`,
		`42`,
		`{"coordinates": []}`,
		`{"coordinates": [105.8342]}`,
		`{"coordinates": "not an array"}`,
		`{"lat": 21.0278, "lng": 105.8342}`,
	}
	for _, raw := range tests {
		if p := ParsePoint(json.RawMessage(raw)); p != nil {
			t.Errorf("ParsePoint(%q) = %+v, want nil", raw, p)
		}
	}
}

func TestPointIsUnset(t *testing.T) {
	if !(Point{}).IsUnset() {
		t.Error("zero point should be unset")
	}
	if (Point{Latitude: 21.0278, Longitude: 105.8342}).IsUnset() {
		t.Error("real point should not be unset")
	}
	// one zero component alone is still a real coordinate
	if (Point{Latitude: 0, Longitude: 105.8342}).IsUnset() {
		t.Error("point on the equator should not be unset")
	}
}
