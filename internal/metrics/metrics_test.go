package metrics

import (
	"encoding/json"
	"sync"
	"testing"
)

func TestNilCollectorIsNoOp(t *testing.T) {
	var c *Collector

	// None of these may panic.
	c.ConnectionOpened()
	c.ConnectionClosed()
	c.BytesReceived(10)
	c.BytesSent(10)
	c.RecordError("boom")

	if c.ActiveConnections() != 0 || c.TotalBytesIn() != 0 || c.ErrorCount() != 0 {
		t.Error("nil collector should report zeros")
	}
	if s := c.Snapshot(); s != (Snapshot{}) {
		t.Errorf("nil snapshot = %+v, want zero value", s)
	}
}

func TestConnectionCounters(t *testing.T) {
	c := New()

	c.ConnectionOpened()
	c.ConnectionOpened()
	c.ConnectionClosed()

	if got := c.ActiveConnections(); got != 1 {
		t.Errorf("active = %d, want 1", got)
	}
	if got := c.TotalConnections(); got != 2 {
		t.Errorf("total = %d, want 2", got)
	}
}

func TestByteCountersConcurrent(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.BytesReceived(10)
			c.BytesSent(5)
		}()
	}
	wg.Wait()

	if got := c.TotalBytesIn(); got != 500 {
		t.Errorf("bytes in = %d, want 500", got)
	}
	if got := c.TotalBytesOut(); got != 250 {
		t.Errorf("bytes out = %d, want 250", got)
	}
}

func TestErrorTracking(t *testing.T) {
	c := New()
	c.RecordError("first")
	c.RecordError("second")

	if got := c.ErrorCount(); got != 2 {
		t.Errorf("errors = %d, want 2", got)
	}
	s := c.Snapshot()
	if s.LastErrorMessage != "second" {
		t.Errorf("last error = %q, want %q", s.LastErrorMessage, "second")
	}
	if s.LastError == "" {
		t.Error("last error timestamp missing")
	}
}

func TestJSONSnapshot(t *testing.T) {
	c := New()
	c.ConnectionOpened()
	c.BytesSent(64)

	var s Snapshot
	if err := json.Unmarshal([]byte(c.JSON()), &s); err != nil {
		t.Fatalf("JSON output not parseable: %v", err)
	}
	if s.ConnectionsActive != 1 || s.BytesOut != 64 {
		t.Errorf("snapshot = %+v", s)
	}
}
