package window

import (
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/winkit/event"
)

func TestPollEvents_EmptyQueueReturnsImmediately(t *testing.T) {
	w, _ := newTestWindow(t)

	start := time.Now()
	if ev, ok := w.PollEvents().Next(); ok {
		t.Fatalf("expected no event, got %v", ev)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Fatalf("poll blocked for %v", elapsed)
	}
}

func TestPollEvents_DrainsInOrder(t *testing.T) {
	w, hw := newTestWindow(t)
	want := []event.Event{
		event.Focused{Focused: true},
		event.ReceivedCharacter{Char: 'x'},
		event.MouseMoved{X: 1, Y: 2},
	}
	for _, ev := range want {
		hw.Inject(ev)
	}

	it := w.PollEvents()
	if lower, _, bounded := it.SizeHint(); lower != 3 || bounded {
		t.Fatalf("expected lower bound 3 and unbounded, got %d %v", lower, bounded)
	}

	var got []event.Event
	for ev := range it.All() {
		got = append(got, ev)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if _, ok := it.Next(); ok {
		t.Fatalf("queue should be empty after draining")
	}
}

func TestPollAndWait_ShareQueue(t *testing.T) {
	w, hw := newTestWindow(t)
	for i := range 4 {
		hw.Inject(event.MouseMoved{X: i})
	}

	poll, wait := w.PollEvents(), w.WaitEvents()
	var xs []int
	for i := range 4 {
		var ev event.Event
		if i%2 == 0 {
			ev, _ = poll.Next()
		} else {
			ev = wait.Next()
		}
		xs = append(xs, ev.(event.MouseMoved).X)
	}
	for i, x := range xs {
		if x != i {
			t.Fatalf("events reordered: %v", xs)
		}
	}
	if _, ok := poll.Next(); ok {
		t.Fatalf("each event should be delivered once")
	}
}

func TestWaitEvents_BlocksUntilEvent(t *testing.T) {
	w, hw := newTestWindow(t)

	got := make(chan event.Event, 1)
	go func() {
		got <- w.WaitEvents().Next()
	}()

	select {
	case ev := <-got:
		t.Fatalf("wait returned early with %v", ev)
	case <-time.After(30 * time.Millisecond):
	}

	hw.Inject(event.Refresh{})
	select {
	case ev := <-got:
		if ev != (event.Refresh{}) {
			t.Fatalf("expected Refresh, got %v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("wait did not return after inject")
	}
}

func TestWaitEvents_ProxyWakeup(t *testing.T) {
	w, hw := newTestWindow(t)
	proxy := w.CreateProxy()

	got := make(chan event.Event, 1)
	go func() {
		got <- w.WaitEvents().Next()
	}()

	time.Sleep(10 * time.Millisecond)
	go proxy.WakeupEventLoop()

	select {
	case ev := <-got:
		if ev != (event.Awakened{}) {
			t.Fatalf("expected Awakened, got %v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("proxy did not wake the loop")
	}
	if hw.Wakeups() != 1 {
		t.Fatalf("expected one wakeup, got %d", hw.Wakeups())
	}
}

func TestWaitEvents_ClonedProxiesWake(t *testing.T) {
	w, hw := newTestWindow(t)
	proxy := w.CreateProxy()
	clones := []Proxy{proxy.Clone(), proxy.Clone().Clone(), proxy}

	for i, p := range clones {
		got := make(chan event.Event, 1)
		go func() {
			got <- w.WaitEvents().Next()
		}()

		time.Sleep(10 * time.Millisecond)
		go p.WakeupEventLoop()

		select {
		case ev := <-got:
			if ev != (event.Awakened{}) {
				t.Fatalf("clone %d: expected Awakened, got %v", i, ev)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("clone %d did not wake the waiting loop", i)
		}
	}
	if hw.Wakeups() != len(clones) {
		t.Fatalf("expected %d wakeups, got %d", len(clones), hw.Wakeups())
	}
}

func TestProxy_ConcurrentWithPolling(t *testing.T) {
	w, hw := newTestWindow(t)
	proxy := w.CreateProxy()

	const senders, perSender = 8, 50
	var wg sync.WaitGroup
	for range senders {
		wg.Add(1)
		go func(p Proxy) {
			defer wg.Done()
			for range perSender {
				p.WakeupEventLoop()
			}
		}(proxy.Clone())
	}

	seen := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		for range w.PollEvents().All() {
			seen++
		}
		select {
		case <-done:
			for range w.PollEvents().All() {
				seen++
			}
			if seen != senders*perSender || hw.Wakeups() != senders*perSender {
				t.Fatalf("expected %d wakeups, saw %d (backend %d)", senders*perSender, seen, hw.Wakeups())
			}
			return
		default:
		}
	}
}

func TestProxy_AfterCloseIsNoop(t *testing.T) {
	w, hw := newTestWindow(t)
	proxy := w.CreateProxy()
	clone := proxy.Clone()

	w.Close()
	proxy.WakeupEventLoop()
	clone.WakeupEventLoop()

	if hw.Wakeups() != 0 {
		t.Fatalf("expected no wakeups after close, got %d", hw.Wakeups())
	}
	if ev := w.WaitEvents().Next(); ev != (event.Destroyed{}) {
		t.Fatalf("wait on closed window should return Destroyed, got %v", ev)
	}
	if _, ok := w.PollEvents().Next(); ok {
		t.Fatalf("poll on closed window should be empty")
	}
	if lower, upper, bounded := w.PollEvents().SizeHint(); lower != 0 || upper != 0 || !bounded {
		t.Fatalf("unexpected size hint on closed window: %d %d %v", lower, upper, bounded)
	}

	var zero Proxy
	zero.WakeupEventLoop()
	w.CreateProxy().WakeupEventLoop()
}

func TestWaitEvents_AllStopsWhenConsumerDoes(t *testing.T) {
	w, hw := newTestWindow(t)
	hw.Inject(event.MouseEntered{})
	hw.Inject(event.MouseLeft{})
	hw.Inject(event.Closed{})
	hw.Inject(event.Refresh{})

	var got []event.Event
	for ev := range w.WaitEvents().All() {
		got = append(got, ev)
		if ev == (event.Closed{}) {
			break
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %v", got)
	}
	if lower, _, bounded := w.WaitEvents().SizeHint(); lower != 1 || bounded {
		t.Fatalf("expected one queued event left, got %d %v", lower, bounded)
	}
}

func TestResizeCallback_SetAndRemove(t *testing.T) {
	w, hw := newTestWindow(t)
	calls := 0
	w.SetResizeCallback(func(uint32, uint32) { calls++ })

	hw.Resize(10, 10)
	w.SetResizeCallback(nil)
	hw.Resize(20, 20)

	if calls != 1 {
		t.Fatalf("expected 1 callback call, got %d", calls)
	}
	if hw.HasResizeCallback() {
		t.Fatalf("callback should be removed")
	}
}
