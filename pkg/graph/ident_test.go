package graph

import (
	"encoding/json"
	"sync"
	"testing"
)

func TestGeneratorMonotonic(t *testing.T) {
	gen := NewGenerator()
	for want := uint64(0); want < 200; want++ {
		if got := gen.Mint().Value(); got != want {
			t.Fatalf("Mint() = %d, want %d", got, want)
		}
	}
}

func TestGeneratorAt(t *testing.T) {
	gen := NewGeneratorAt(42)
	if got := gen.Mint().Value(); got != 42 {
		t.Errorf("first Mint() = %d, want 42", got)
	}
	if got := gen.Mint().Value(); got != 43 {
		t.Errorf("second Mint() = %d, want 43", got)
	}
}

func TestGeneratorConcurrentUniqueness(t *testing.T) {
	const (
		goroutines = 8
		perWorker  = 1000
	)
	gen := NewGenerator()

	var wg sync.WaitGroup
	results := make([][]ID, goroutines)
	for w := 0; w < goroutines; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			ids := make([]ID, perWorker)
			for i := range ids {
				ids[i] = gen.Mint()
			}
			results[w] = ids
		}(w)
	}
	wg.Wait()

	seen := make(map[ID]struct{}, goroutines*perWorker)
	for _, ids := range results {
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				t.Fatalf("duplicate ID minted: %s", id)
			}
			seen[id] = struct{}{}
		}
	}
	if len(seen) != goroutines*perWorker {
		t.Errorf("minted %d distinct IDs, want %d", len(seen), goroutines*perWorker)
	}
}

func TestIDRoundTrip(t *testing.T) {
	for _, raw := range []uint64{0, 1, 7, 1 << 32, 1<<63 + 5} {
		data, err := json.Marshal(FromValue(raw))
		if err != nil {
			t.Fatalf("marshal %d: %v", raw, err)
		}
		var id ID
		if err := json.Unmarshal(data, &id); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if id.Value() != raw {
			t.Errorf("round trip of %d = %d", raw, id.Value())
		}
	}
}

func TestIDUnmarshalRejectsNonInteger(t *testing.T) {
	var id ID
	for _, input := range []string{`"3"`, `-1`, `1.5`, `{}`} {
		if err := json.Unmarshal([]byte(input), &id); err == nil {
			t.Errorf("unmarshal %s: expected error", input)
		}
	}
}

func TestIDEquality(t *testing.T) {
	if FromValue(3) != FromValue(3) {
		t.Error("equal-valued IDs must compare equal")
	}
	if FromValue(3) == FromValue(4) {
		t.Error("distinct-valued IDs must compare unequal")
	}
	// IDs are map keys throughout the graph.
	m := map[ID]string{FromValue(9): "x"}
	if m[FromValue(9)] != "x" {
		t.Error("ID map lookup by value failed")
	}
}
