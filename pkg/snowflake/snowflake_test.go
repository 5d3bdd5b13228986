package snowflake

import (
	"sync"
	"testing"
)

func TestGenID(t *testing.T) {
	if id := GenID(); id == 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}

func TestGenID_Unique(t *testing.T) {
	const n = 10000
	ids := make(map[uint64]struct{}, n)

	for i := 0; i < n; i++ {
		id := GenID()
		if _, exists := ids[id]; exists {
			t.Fatalf("duplicate id found: %d", id)
		}
		ids[id] = struct{}{}
	}
}

func TestGenID_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint64]struct{}, goroutines*perRoutine)
		dup uint64
	)

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenID()

				mu.Lock()
				if _, exists := ids[id]; exists {
					dup = id
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if dup != 0 {
		t.Fatalf("duplicate id found in concurrent test: %d", dup)
	}
}

func TestSetNode(t *testing.T) {
	t.Cleanup(func() { _ = SetNode(1) })

	if err := SetNode(7); err != nil {
		t.Fatalf("SetNode(7): %v", err)
	}
	if err := SetNode(5000); err == nil {
		t.Fatal("expected error for out-of-range node id")
	}
}
