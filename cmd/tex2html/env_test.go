package main

import (
	"os"
	"testing"
	"time"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	before := time.Now()
	if got := env.Now(); got.Before(before) {
		t.Errorf("Now() = %v, want a time after %v", got, before)
	}
	if env.Stdout != os.Stdout || env.Stderr != os.Stderr {
		t.Error("writers are not the process streams")
	}
	if env.Getenv == nil || env.Environ == nil {
		t.Error("environment readers are nil")
	}
}
