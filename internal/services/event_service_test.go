package services

import "testing"

func TestEventFeedIsPerUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	events := NewEventService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")
	bob := createTestUser(t, users, "bob", "b@x.com")

	if err := events.CreateEvent("user.signin", "info", "signed in", &alice.ID); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := events.CreateEvent("task.created", "info", "task created", &alice.ID); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := events.CreateEvent("user.signin", "info", "signed in", &bob.ID); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	aliceFeed, err := events.GetEventsForUser(alice.ID, 10)
	if err != nil {
		t.Fatalf("GetEventsForUser: %v", err)
	}
	if len(aliceFeed) != 2 {
		t.Errorf("alice sees %d events, want 2", len(aliceFeed))
	}
	for _, event := range aliceFeed {
		if event.UserID == nil || *event.UserID != alice.ID {
			t.Errorf("alice's feed contains foreign event %+v", event)
		}
	}

	bobFeed, err := events.GetEventsForUser(bob.ID, 10)
	if err != nil {
		t.Fatalf("GetEventsForUser: %v", err)
	}
	if len(bobFeed) != 1 {
		t.Errorf("bob sees %d events, want 1", len(bobFeed))
	}
}

func TestEventFeedLimit(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	events := NewEventService(db)
	alice := createTestUser(t, users, "alice", "a@x.com")

	for i := 0; i < 5; i++ {
		if err := events.CreateEvent("task.created", "info", "task created", &alice.ID); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	feed, err := events.GetEventsForUser(alice.ID, 3)
	if err != nil {
		t.Fatalf("GetEventsForUser: %v", err)
	}
	if len(feed) != 3 {
		t.Errorf("feed length = %d, want 3", len(feed))
	}
}
