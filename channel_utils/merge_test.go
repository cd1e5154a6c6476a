package channel_utils

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"testing"
	"time"
)

type goDispatcher struct{}

func (goDispatcher) Submit(task func()) error {
	go task()
	return nil
}

type failingDispatcher struct {
	allowed int
}

func (d *failingDispatcher) Submit(task func()) error {
	if d.allowed == 0 {
		return errors.New("pool overloaded")
	}
	d.allowed--
	go task()
	return nil
}

func TestMergeChannels(t *testing.T) {
	a := make(chan int, 2)
	b := make(chan int, 1)
	a <- 1
	a <- 2
	b <- 3
	close(a)
	close(b)

	merged, err := MergeChannels(context.Background(), goDispatcher{}, a, b)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	var got []int
	for v := range merged {
		got = append(got, v)
	}
	sort.Ints(got)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("merged values = %v", got)
	}
}

func TestMergeChannels_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := make(chan int, 1)
	a <- 1
	close(a)

	merged, err := MergeChannels(ctx, goDispatcher{}, a)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	cancel()

	select {
	case <-waitClosed(merged):
	case <-time.After(time.Second):
		t.Fatal("merged channel not closed after cancel")
	}
}

func TestMergeChannels_SubmitError(t *testing.T) {
	tests := []struct {
		name    string
		allowed int
	}{
		{name: "second forwarder rejected", allowed: 1},
		{name: "closer rejected", allowed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := runtime.NumGoroutine()

			// a holds a value nobody will read from merged; b stays open with nothing to send.
			a := make(chan int, 1)
			a <- 1
			close(a)
			b := make(chan int)
			defer close(b)

			_, err := MergeChannels(context.Background(), &failingDispatcher{allowed: tt.allowed}, a, b)
			if err == nil {
				t.Fatal("expected submit error")
			}

			deadline := time.Now().Add(time.Second)
			for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			if after := runtime.NumGoroutine(); after > before {
				t.Errorf("forwarders left running: goroutines before = %d, after = %d", before, after)
			}
		})
	}
}

func waitClosed[T any](ch <-chan T) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()
	return done
}
