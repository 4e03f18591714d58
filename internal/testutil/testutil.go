package testutil

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/feedboard/feedboard/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestEntry creates a feedback entry with sensible defaults.
func NewTestEntry(t testing.TB, name string) model.Entry {
	t.Helper()
	return model.Entry{
		ID:      UniqueID("entry"),
		Name:    name,
		Email:   name + "@example.com",
		Message: "feedback from " + name,
		Votes:   0,
	}
}

// NewTestEntryWithVotes creates a feedback entry with a preset vote count.
func NewTestEntryWithVotes(t testing.TB, name string, votes int) model.Entry {
	t.Helper()
	e := NewTestEntry(t, name)
	e.Votes = votes
	return e
}

var idSeq uint64

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixNano(), atomic.AddUint64(&idSeq, 1))
}
