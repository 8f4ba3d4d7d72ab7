package sender

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcherRunsJobs(t *testing.T) {
	d := NewDispatcher(Options{Workers: 2, QueueSize: 8})
	var ran atomic.Int32

	for i := 0; i < 5; i++ {
		err := d.Enqueue(context.Background(), "test", func() error {
			ran.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	d.Close()

	if got := ran.Load(); got != 5 {
		t.Fatalf("ran %d jobs, want 5", got)
	}
	if d.ErrorCount() != 0 {
		t.Fatalf("error count = %d", d.ErrorCount())
	}
}

func TestDispatcherCountsFailures(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 4, MaxDuration: time.Second})

	err := d.Enqueue(context.Background(), "test", func() error {
		return errors.New("telegram said no")
	})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	d.Close()

	if d.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", d.ErrorCount())
	}
}

func TestDispatcherRejectsAfterClose(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1})
	d.Close()

	err := d.Enqueue(context.Background(), "test", func() error { return nil })
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("err = %v, want ErrQueueClosed", err)
	}
}

func TestDispatcherRejectsWhenFull(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	defer d.Close()

	block := make(chan struct{})
	release := func() error { <-block; return nil }

	// First job occupies the worker, second fills the queue.
	_ = d.Enqueue(context.Background(), "test", release)
	_ = d.Enqueue(context.Background(), "test", release)

	var errFull error
	for i := 0; i < 10; i++ {
		errFull = d.Enqueue(context.Background(), "test", func() error { return nil })
		if errors.Is(errFull, ErrQueueFull) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	close(block)
	if !errors.Is(errFull, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", errFull)
	}
}

func TestSanitizeErrorMessage(t *testing.T) {
	err := errors.New("Post \"https://api.telegram.org/bot123456:AAH-secretToken_x/sendMessage\": timeout")
	got := sanitizeErrorMessage(err)
	if got != "Post \"https://api.telegram.org/bot<redacted>/sendMessage\": timeout" {
		t.Fatalf("sanitized = %q", got)
	}
	if sanitizeErrorMessage(nil) != "" {
		t.Fatal("nil error should sanitize to empty string")
	}
}
