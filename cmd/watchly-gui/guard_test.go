package main

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestGuardedRecovers(t *testing.T) {
	var scope atomic.Value
	guarded("test.guard", func(s string) {
		scope.Store(s)
	}, func() {
		panic("boom")
	})
	if got, _ := scope.Load().(string); got != "test.guard" {
		t.Fatalf("onPanic scope = %q, want test.guard", got)
	}
}

func TestGuardedNoPanic(t *testing.T) {
	var called atomic.Bool
	ran := false
	guarded("test.guard.ok", func(string) {
		called.Store(true)
	}, func() { ran = true })
	if !ran || called.Load() {
		t.Fatalf("fn should run without triggering onPanic")
	}
}

func TestBackgroundSurvivesPanicWithoutApp(t *testing.T) {
	var a *guiApp
	done := make(chan struct{})
	a.background("test.background", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("background goroutine did not finish")
	}
}
