package emit

import (
	"sync"
	"testing"
)

func TestBufferedEmitter(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{Seed: 1, Step: 1, Msg: MsgPassStart})
	b.Emit(Event{Seed: 1, Step: 2, NodeID: "router-1", Msg: MsgRouteSelected})
	b.Emit(Event{Seed: 2, Step: 1, Msg: MsgPassStart})

	t.Run("history is keyed by seed", func(t *testing.T) {
		if got := b.History(1); len(got) != 2 {
			t.Fatalf("History(1) has %d events, want 2", len(got))
		}
		if got := b.History(2); len(got) != 1 {
			t.Fatalf("History(2) has %d events, want 1", len(got))
		}
		if got := b.History(3); len(got) != 0 {
			t.Fatalf("History(3) has %d events, want 0", len(got))
		}
	})

	t.Run("history preserves emission order", func(t *testing.T) {
		got := b.History(1)
		if got[0].Msg != MsgPassStart || got[1].Msg != MsgRouteSelected {
			t.Fatalf("order = [%s, %s]", got[0].Msg, got[1].Msg)
		}
	})

	t.Run("filter narrows by node and message", func(t *testing.T) {
		byNode := b.HistoryWithFilter(1, HistoryFilter{NodeID: "router-1"})
		if len(byNode) != 1 || byNode[0].Msg != MsgRouteSelected {
			t.Fatalf("filtered = %+v", byNode)
		}
		byMsg := b.HistoryWithFilter(1, HistoryFilter{Msg: MsgPassStart})
		if len(byMsg) != 1 {
			t.Fatalf("filtered = %+v", byMsg)
		}
		none := b.HistoryWithFilter(1, HistoryFilter{NodeID: "router-1", Msg: MsgPassStart})
		if len(none) != 0 {
			t.Fatalf("filtered = %+v", none)
		}
	})

	t.Run("clear drops one pass", func(t *testing.T) {
		b.Clear(1)
		if len(b.History(1)) != 0 || len(b.History(2)) != 1 {
			t.Fatal("Clear removed the wrong pass")
		}
	})

	t.Run("clear all empties the buffer", func(t *testing.T) {
		b.ClearAll()
		if len(b.History(2)) != 0 {
			t.Fatal("ClearAll left events behind")
		}
	})
}

func TestBufferedEmitterConcurrent(t *testing.T) {
	b := NewBufferedEmitter()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			for s := 0; s < 100; s++ {
				b.Emit(Event{Seed: seed, Step: s, Msg: MsgSelection})
			}
		}(int64(i))
	}
	wg.Wait()
	for seed := int64(0); seed < 8; seed++ {
		if got := len(b.History(seed)); got != 100 {
			t.Errorf("seed %d recorded %d events, want 100", seed, got)
		}
	}
}
