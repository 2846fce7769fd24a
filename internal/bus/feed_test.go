package bus

import "testing"

func TestFeedDeliversToAllSubscribers(t *testing.T) {
	var f Feed[int]
	a, cancelA := f.Subscribe()
	defer cancelA()
	b, cancelB := f.Subscribe()
	defer cancelB()

	f.Publish(7)

	if got := <-a; got != 7 {
		t.Errorf("subscriber a got %d, want 7", got)
	}
	if got := <-b; got != 7 {
		t.Errorf("subscriber b got %d, want 7", got)
	}
}

func TestFeedLatestWins(t *testing.T) {
	var f Feed[int]
	ch, cancel := f.Subscribe()
	defer cancel()

	// Nobody reading: later publishes displace earlier ones
	f.Publish(1)
	f.Publish(2)
	f.Publish(3)

	if got := <-ch; got != 3 {
		t.Errorf("got %d, want the newest snapshot 3", got)
	}
	select {
	case v := <-ch:
		t.Errorf("unexpected extra snapshot %d", v)
	default:
	}
}

func TestFeedSeedsLateSubscriber(t *testing.T) {
	var f Feed[string]
	f.Publish("current")

	ch, cancel := f.Subscribe()
	defer cancel()

	if got := <-ch; got != "current" {
		t.Errorf("late subscriber got %q, want the last snapshot", got)
	}
}

func TestFeedLatest(t *testing.T) {
	var f Feed[int]
	if _, ok := f.Latest(); ok {
		t.Error("fresh feed must report no snapshot")
	}
	f.Publish(42)
	if v, ok := f.Latest(); !ok || v != 42 {
		t.Errorf("Latest = %d, %v", v, ok)
	}
}

func TestFeedCancelStopsDelivery(t *testing.T) {
	var f Feed[int]
	ch, cancel := f.Subscribe()
	cancel()

	if _, open := <-ch; open {
		t.Error("cancelled subscription channel must be closed")
	}
	f.Publish(1) // must not panic on the removed channel
}

func TestFeedCloseIsTerminal(t *testing.T) {
	var f Feed[int]
	ch, _ := f.Subscribe()

	f.Close()
	f.Close() // idempotent
	if _, open := <-ch; open {
		t.Error("close must close subscriber channels")
	}
	f.Publish(9) // no-op, must not panic

	late, _ := f.Subscribe()
	if _, open := <-late; open {
		t.Error("subscribing to a closed feed must yield a closed channel")
	}
}
