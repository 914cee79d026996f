package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// TestDecodeFlatStrike verifies the plain JSON wire shape
func TestDecodeFlatStrike(t *testing.T) {
	msg := []byte(`{"id":"w1","lat":35.5,"lon":-97.25,"time":1700000000,"intensity":0.7}`)
	ev, ok := decodeStrike(msg)
	if !ok {
		t.Fatal("Expected flat strike to decode")
	}
	if ev.ID != "w1" {
		t.Errorf("Expected id w1, got %s", ev.ID)
	}
	if ev.Lat != 35.5 || ev.Lng != -97.25 {
		t.Errorf("Expected position (35.5, -97.25), got (%v, %v)", ev.Lat, ev.Lng)
	}
	if !ev.Time.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Expected seconds-precision timestamp, got %v", ev.Time)
	}
	if ev.Intensity != 0.7 {
		t.Errorf("Expected intensity 0.7, got %v", ev.Intensity)
	}
}

// TestDecodeGeoJSONFeature verifies the Feature wire shape with Point
// geometry and properties
func TestDecodeGeoJSONFeature(t *testing.T) {
	msg := []byte(`{
		"type": "Feature",
		"geometry": {"type": "Point", "coordinates": [139.69, 35.68]},
		"properties": {"id": "tokyo-1", "time": 1700000000000, "intensity": 2.5}
	}`)
	ev, ok := decodeStrike(msg)
	if !ok {
		t.Fatal("Expected feature to decode")
	}
	if ev.ID != "tokyo-1" {
		t.Errorf("Expected id tokyo-1, got %s", ev.ID)
	}
	// GeoJSON coordinate order is lng, lat
	if ev.Lng != 139.69 || ev.Lat != 35.68 {
		t.Errorf("Expected position (35.68, 139.69), got (%v, %v)", ev.Lat, ev.Lng)
	}
	if !ev.Time.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("Expected milliseconds-precision timestamp, got %v", ev.Time)
	}
	if ev.Intensity != 1 {
		t.Errorf("Expected intensity clamped to 1, got %v", ev.Intensity)
	}
}

// TestDecodeFeatureNumericID verifies fallback to the top-level feature id
func TestDecodeFeatureNumericID(t *testing.T) {
	msg := []byte(`{
		"type": "Feature",
		"id": 4217,
		"geometry": {"type": "Point", "coordinates": [0, 0]},
		"properties": {}
	}`)
	ev, ok := decodeStrike(msg)
	if !ok {
		t.Fatal("Expected feature with numeric id to decode")
	}
	if ev.ID != "4217" {
		t.Errorf("Expected id 4217, got %s", ev.ID)
	}
}

// TestDecodeDropsMalformed verifies the reader drops bad frames instead
// of surfacing them
func TestDecodeDropsMalformed(t *testing.T) {
	cases := []struct {
		name string
		msg  string
	}{
		{"not json", `{{{`},
		{"missing id", `{"lat":1,"lon":2}`},
		{"feature without geometry", `{"type":"Feature","properties":{"id":"x"}}`},
		{"feature with line geometry", `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]},"properties":{"id":"x"}}`},
		{"feature without id", `{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{}}`},
	}
	for _, tc := range cases {
		if _, ok := decodeStrike([]byte(tc.msg)); ok {
			t.Errorf("%s: expected frame dropped", tc.name)
		}
	}
}

// TestWireTimePrecision verifies the epoch precision heuristic
func TestWireTimePrecision(t *testing.T) {
	if got := wireTime(1700000000); !got.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Expected seconds interpretation, got %v", got)
	}
	if got := wireTime(1700000000000); !got.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("Expected milliseconds interpretation, got %v", got)
	}
	if got := wireTime(1700000000000000000); !got.Equal(time.Unix(0, 1700000000000000000)) {
		t.Errorf("Expected nanoseconds interpretation, got %v", got)
	}

	before := time.Now()
	got := wireTime(0)
	if got.Before(before.Add(-time.Second)) || got.After(time.Now().Add(time.Second)) {
		t.Errorf("Expected missing timestamp to map near now, got %v", got)
	}
}

// TestReconnectBacksOffOnImmediateDrop verifies a server that accepts and
// instantly drops connections does not trigger a hot reconnect loop: the
// backoff keeps growing because no message was ever delivered
func TestReconnectBacksOffOnImmediateDrop(t *testing.T) {
	var mu sync.Mutex
	var dials int
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		dials++
		mu.Unlock()
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer srv.Close()

	src := NewWebsocketSource("ws" + strings.TrimPrefix(srv.URL, "http"))
	src.initialBackoff = 20 * time.Millisecond
	src.maxBackoff = 200 * time.Millisecond

	cancel := src.Subscribe(func(StrikeEvent) {})
	time.Sleep(400 * time.Millisecond)
	cancel()

	mu.Lock()
	got := dials
	mu.Unlock()

	// Growing 20ms backoff permits at most a handful of attempts in the
	// window; a reset-on-dial bug produces hundreds
	if got < 2 {
		t.Fatalf("Expected the reader to keep retrying, got %d dials", got)
	}
	if got > 8 {
		t.Errorf("Expected backoff to throttle reconnects, got %d dials in 400ms", got)
	}
}
