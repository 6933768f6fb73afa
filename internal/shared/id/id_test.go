package id

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	id := NewGenerator().GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestRecycleID(t *testing.T) {
	rid := NewRecycleID()

	if !strings.HasPrefix(rid.String(), "rb_") {
		t.Errorf("RecycleID should start with 'rb_', got: %s", rid)
	}
	if !IsRecycleID(rid.String()) {
		t.Errorf("RecycleID should be recognized: %s", rid)
	}

	for _, s := range []string{"", "rb_", "rb_nope", "metadata.json", "req_" + NewGenerator().GenerateString()} {
		if IsRecycleID(s) {
			t.Errorf("should not be a recycle id: %q", s)
		}
	}
}

func TestRecycleIDsSortByCreation(t *testing.T) {
	gen := NewGenerator()

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = gen.NewRecycleID().String()
	}

	if !sort.StringsAreSorted(ids) {
		t.Error("recycle ids from one generator should sort in creation order")
	}
}

func TestSessionID(t *testing.T) {
	sid := NewSessionID()

	if !IsSessionID(sid.String()) {
		t.Errorf("SessionID should be a UUID, got: %s", sid)
	}
	if IsSessionID("not-a-session") {
		t.Error("garbage should not parse as a session id")
	}
}

func TestRequestID(t *testing.T) {
	reqID := NewRequestID()

	if !strings.HasPrefix(string(reqID), "req_") {
		t.Errorf("RequestID should start with 'req_', got: %s", reqID)
	}
}

func TestIsValid(t *testing.T) {
	validID := NewGenerator().GenerateString()
	if !IsValid(validID) {
		t.Error("Generated ULID should be valid")
	}

	invalidIDs := []string{
		"",
		"invalid",
		"1234567890",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz",
	}

	for _, id := range invalidIDs {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now()
	rid := NewGenerator().NewRecycleID()
	after := time.Now()

	ts, err := Timestamp(rid.String())
	if err != nil {
		t.Fatalf("Failed to extract timestamp: %v", err)
	}

	// ULID timestamps have millisecond precision
	if ts.UnixMilli() < before.UnixMilli() || ts.UnixMilli() > after.UnixMilli() {
		t.Errorf("Timestamp should be between %d and %d ms, got %d ms", before.UnixMilli(), after.UnixMilli(), ts.UnixMilli())
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 50
	const idsPerGoroutine = 50

	var wg sync.WaitGroup
	idChan := make(chan string, goroutines*idsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < idsPerGoroutine; j++ {
				idChan <- gen.NewRecycleID().String()
			}
		}()
	}

	wg.Wait()
	close(idChan)

	seen := make(map[string]bool)
	for id := range idChan {
		if seen[id] {
			t.Errorf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
