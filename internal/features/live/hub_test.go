package live

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeConn struct {
	writers  atomic.Int32
	overlaps atomic.Int32
	writes   atomic.Int32
	closed   atomic.Bool
	writeErr error
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	if f.writers.Add(1) > 1 {
		f.overlaps.Add(1)
	}
	time.Sleep(time.Millisecond)
	f.writers.Add(-1)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes.Add(1)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed.Store(true)
	return nil
}

func TestPublishSerializesWritesPerConnection(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := &fakeConn{}
	hub.subscribe(c, "tasks")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Publish(Event{Action: "updated", Table: "tasks", ID: 1})
		}()
	}
	wg.Wait()

	if n := c.overlaps.Load(); n != 0 {
		t.Errorf("%d overlapping writes on one connection", n)
	}
	if n := c.writes.Load(); n != 20 {
		t.Errorf("writes = %d, want 20", n)
	}
}

func TestPublishOnlyReachesMatchingTable(t *testing.T) {
	hub := NewHub(zap.NewNop())
	tasks := &fakeConn{}
	leads := &fakeConn{}
	hub.subscribe(tasks, "tasks")
	hub.subscribe(leads, "leads")

	hub.Publish(Event{Action: "created", Table: "tasks", ID: 7})

	if n := tasks.writes.Load(); n != 1 {
		t.Errorf("tasks writes = %d, want 1", n)
	}
	if n := leads.writes.Load(); n != 0 {
		t.Errorf("leads writes = %d, want 0", n)
	}
}

func TestBrokenConnectionIsDropped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c := &fakeConn{writeErr: errors.New("broken pipe")}
	hub.subscribe(c, "tasks")

	hub.Publish(Event{Action: "deleted", Table: "tasks", ID: 3})

	if !c.closed.Load() {
		t.Error("broken connection not closed")
	}
	hub.mu.RLock()
	_, still := hub.conns[c]
	hub.mu.RUnlock()
	if still {
		t.Error("broken connection still subscribed")
	}
}
