package websocket

import (
	"errors"
	"testing"
	"time"

	"github.com/solpin/solpin-service/internal/types"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(nil, hub)
	hub.RegisterClient(client)
	waitFor(t, "client to register", func() bool { return hub.ClientCount() == 1 })

	hub.UnregisterClient(client)
	waitFor(t, "client to unregister", func() bool { return hub.ClientCount() == 0 })
}

// A client whose writePump has stalled must be dropped by the hub without
// killing the hub loop: the unregister path is the only owner of the send
// channel's close.
func TestHub_DropsStalledClientWithoutPanic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient(nil, hub)
	hub.RegisterClient(client)
	waitFor(t, "client to register", func() bool { return hub.ClientCount() == 1 })

	// Fill the outbound buffer; the pumps are not running, so nothing drains.
	for i := 0; i < cap(client.send); i++ {
		if err := client.SendEvent(types.NewEvent(types.EventUploadCreated, nil)); err != nil {
			t.Fatalf("unexpected error while filling buffer: %v", err)
		}
	}

	if err := client.SendEvent(types.NewEvent(types.EventUploadCreated, nil)); !errors.Is(err, ErrSendBufferFull) {
		t.Fatalf("expected ErrSendBufferFull, got %v", err)
	}

	// Broadcasting to the stalled client drops it from the hub.
	hub.Broadcast(types.NewEvent(types.EventUploadCreated, nil))
	waitFor(t, "stalled client to be dropped", func() bool { return hub.ClientCount() == 0 })

	// The hub loop is still serving: a new client can register and receive.
	fresh := NewClient(nil, hub)
	hub.RegisterClient(fresh)
	waitFor(t, "fresh client to register", func() bool { return hub.ClientCount() == 1 })

	hub.Broadcast(types.NewEvent(types.EventUploadCreated, nil))
	waitFor(t, "fresh client to receive", func() bool { return len(fresh.send) == 1 })
}
