package feed

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	geojson "github.com/paulmach/go.geojson"
)

const (
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 60 * time.Second
)

// WebsocketSource consumes a live strike feed over a websocket. The reader
// reconnects with exponential backoff and keeps delivering until the
// subscription is cancelled. The backoff resets only after a connection
// has delivered at least one message, so a server that accepts and then
// immediately drops connections still gets backed off.
//
// Two wire shapes are accepted per message: a flat JSON object
// {"id","lat","lon","time","intensity"} or a GeoJSON Feature with a Point
// geometry and the same fields as properties.
type WebsocketSource struct {
	url string

	// SubscribeMessage, when non-empty, is sent once after each connect
	// (some feeds require an explicit subscription frame)
	SubscribeMessage string

	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func NewWebsocketSource(url string) *WebsocketSource {
	return &WebsocketSource{
		url:            url,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
	}
}

func (w *WebsocketSource) Subscribe(fn Callback) (cancel func()) {
	done := make(chan struct{})
	var once sync.Once

	go w.run(fn, done)

	return func() {
		once.Do(func() { close(done) })
	}
}

func (w *WebsocketSource) run(fn Callback, done <-chan struct{}) {
	backoff := w.initialBackoff
	for {
		select {
		case <-done:
			return
		default:
		}

		if w.connect(fn, done) {
			backoff = w.initialBackoff
			continue
		}

		select {
		case <-done:
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > w.maxBackoff {
			backoff = w.maxBackoff
		}
	}
}

// connect runs one dial/read cycle; true means the connection delivered
// at least one message before it went away
func (w *WebsocketSource) connect(fn Callback, done <-chan struct{}) bool {
	conn, _, err := websocket.DefaultDialer.Dial(w.url, nil)
	if err != nil {
		log.Printf("feed: dial %s: %v", w.url, err)
		return false
	}
	defer conn.Close()

	if w.SubscribeMessage != "" {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(w.SubscribeMessage)); err != nil {
			log.Printf("feed: subscribe frame: %v", err)
			return false
		}
	}

	// Close the connection when cancelled so the blocked read returns
	connDone := make(chan struct{})
	defer close(connDone)
	go func() {
		select {
		case <-done:
			conn.Close()
		case <-connDone:
		}
	}()

	return w.readLoop(conn, fn, done)
}

func (w *WebsocketSource) readLoop(conn *websocket.Conn, fn Callback, done <-chan struct{}) (delivered bool) {
	for {
		select {
		case <-done:
			return delivered
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
			default:
				log.Printf("feed: read: %v, reconnecting", err)
			}
			return delivered
		}
		delivered = true

		ev, ok := decodeStrike(message)
		if !ok {
			continue
		}
		fn(ev)
	}
}

type wireStrike struct {
	Type      string  `json:"type"`
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Time      int64   `json:"time"`
	Intensity float64 `json:"intensity"`
}

// decodeStrike accepts either wire shape; malformed frames are dropped
func decodeStrike(message []byte) (StrikeEvent, bool) {
	var raw wireStrike
	if err := json.Unmarshal(message, &raw); err != nil {
		return StrikeEvent{}, false
	}

	if raw.Type == "Feature" {
		return decodeFeature(message)
	}
	if raw.ID == "" {
		return StrikeEvent{}, false
	}

	return StrikeEvent{
		ID:        raw.ID,
		Lat:       raw.Lat,
		Lng:       raw.Lon,
		Time:      wireTime(raw.Time),
		Intensity: clamp01(raw.Intensity),
	}, true
}

func decodeFeature(message []byte) (StrikeEvent, bool) {
	f, err := geojson.UnmarshalFeature(message)
	if err != nil || f.Geometry == nil || !f.Geometry.IsPoint() || len(f.Geometry.Point) < 2 {
		return StrikeEvent{}, false
	}

	id := featureID(f)
	if id == "" {
		return StrikeEvent{}, false
	}

	ev := StrikeEvent{
		ID:  id,
		Lng: f.Geometry.Point[0],
		Lat: f.Geometry.Point[1],
	}
	if ts, err := f.PropertyFloat64("time"); err == nil {
		ev.Time = wireTime(int64(ts))
	}
	if in, err := f.PropertyFloat64("intensity"); err == nil {
		ev.Intensity = clamp01(in)
	}
	return ev, true
}

func featureID(f *geojson.Feature) string {
	if s, err := f.PropertyString("id"); err == nil && s != "" {
		return s
	}
	switch v := f.ID.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// wireTime interprets upstream epoch stamps; feeds disagree on precision
func wireTime(ts int64) time.Time {
	switch {
	case ts <= 0:
		return time.Now()
	case ts > 1e17: // nanoseconds
		return time.Unix(0, ts)
	case ts > 1e11: // milliseconds
		return time.UnixMilli(ts)
	default: // seconds
		return time.Unix(ts, 0)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
