package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pavanmanishd/arenakit/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, 10, 10))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 10+4*10)

	assert.Equal(t, []string{
		"0 1", "1 1", "2 2", "3 6", "4 24",
		"5 120", "6 720", "7 5040", "8 40320", "9 362880",
	}, lines[:10])

	want := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	for i := range 4 {
		assert.Equal(t, want, lines[10+i*10:20+i*10], "list %d", i+1)
	}
}

func TestRunOverCapacity(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, 11, 10)
	require.ErrorIs(t, err, arena.ErrOutOfCapacity)
	assert.Contains(t, err.Error(), "arena map: set 10")
	assert.Empty(t, buf.String(), "nothing is printed before the arena map is complete")
}

func TestRunEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, 0, 10))
	assert.Empty(t, buf.String())
}

func TestRelease(t *testing.T) {
	var err error
	release(&err, "ok", func() error { return nil })
	require.NoError(t, err)

	release(&err, "stale", func() error { return arena.ErrUseAfterRelease })
	require.ErrorIs(t, err, arena.ErrUseAfterRelease)
	assert.Contains(t, err.Error(), "free stale")

	release(&err, "later", func() error { return arena.ErrDoubleRelease })
	require.ErrorIs(t, err, arena.ErrUseAfterRelease, "the first failure must be kept")

	err = arena.ErrOutOfCapacity
	release(&err, "after", func() error { return arena.ErrDoubleRelease })
	require.ErrorIs(t, err, arena.ErrOutOfCapacity)
}

func TestFact(t *testing.T) {
	for n, want := range []int{1, 1, 2, 6, 24, 120} {
		assert.Equal(t, want, fact(n), "fact(%d)", n)
	}
}
