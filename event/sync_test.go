package event

import (
	"testing"
	"time"
)

// TestPublishDeliversInOrder verifies consumers receive each payload in
// subscription order
func TestPublishDeliversInOrder(t *testing.T) {
	ch := NewSyncChannel()
	var order []string
	ch.Subscribe(func(StrikeSync) { order = append(order, "first") })
	ch.Subscribe(func(StrikeSync) { order = append(order, "second") })

	ch.Publish(StrikeSync{StrikeID: "a"})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Expected delivery in subscription order, got %v", order)
	}
	if ch.ConsumerCount() != 2 {
		t.Errorf("Expected 2 consumers, got %d", ch.ConsumerCount())
	}
}

// TestLatestIsLastWriteWins verifies the channel holds only the most
// recent payload with no queueing
func TestLatestIsLastWriteWins(t *testing.T) {
	ch := NewSyncChannel()

	if _, ok := ch.Latest(); ok {
		t.Error("Expected no payload before the first publish")
	}

	ch.Publish(StrikeSync{StrikeID: "a", Duration: time.Second})
	ch.Publish(StrikeSync{StrikeID: "b", Duration: 2 * time.Second})

	got, ok := ch.Latest()
	if !ok {
		t.Fatal("Expected a payload after publishing")
	}
	if got.StrikeID != "b" || got.Duration != 2*time.Second {
		t.Errorf("Expected the later payload to win, got %+v", got)
	}
}

// TestLateSubscriberMissesEarlierBroadcasts verifies fire-and-forget
// semantics: no replay for consumers that join late
func TestLateSubscriberMissesEarlierBroadcasts(t *testing.T) {
	ch := NewSyncChannel()
	ch.Publish(StrikeSync{StrikeID: "early"})

	received := 0
	ch.Subscribe(func(StrikeSync) { received++ })
	if received != 0 {
		t.Errorf("Expected no replay on subscribe, got %d deliveries", received)
	}

	ch.Publish(StrikeSync{StrikeID: "late"})
	if received != 1 {
		t.Errorf("Expected one delivery after subscribing, got %d", received)
	}
}

// TestNilConsumerIgnored verifies subscribing nil is a no-op rather than
// a publish-time panic
func TestNilConsumerIgnored(t *testing.T) {
	ch := NewSyncChannel()
	ch.Subscribe(nil)
	if ch.ConsumerCount() != 0 {
		t.Errorf("Expected nil consumer dropped, got %d", ch.ConsumerCount())
	}
	ch.Publish(StrikeSync{StrikeID: "x"})
}
