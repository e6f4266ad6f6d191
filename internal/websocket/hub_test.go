package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a hub message")
		return nil
	}
}

func expectSilence(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRoutesNotificationsPerUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := NewClient(hub, nil, "user-alice")
	aliceSecond := NewClient(hub, nil, "user-alice")
	bob := NewClient(hub, nil, "user-bob")
	hub.Register <- alice
	hub.Register <- aliceSecond
	hub.Register <- bob

	hub.NotifyUser("user-alice", NewTaskMessage("task.created", map[string]string{"id": "t1"}))

	for _, c := range []*Client{alice, aliceSecond} {
		var msg Message
		if err := json.Unmarshal(receive(t, c), &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Action != "task.created" {
			t.Errorf("action = %q, want task.created", msg.Action)
		}
	}
	expectSilence(t, bob)
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := NewClient(hub, nil, "user-alice")
	hub.Register <- alice
	hub.Unregister <- alice

	// The Send channel is closed on unregister.
	select {
	case _, ok := <-alice.Send:
		if ok {
			t.Error("expected closed Send channel")
		}
	case <-time.After(time.Second):
		t.Fatal("Send channel not closed on unregister")
	}

	// Late notifications for a gone user must not panic.
	hub.NotifyUser("user-alice", NewTaskMessage("task.updated", nil))
}
