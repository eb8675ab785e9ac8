package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebuildSequenceDropsStaleResults(t *testing.T) {
	var seq rebuildSequence
	first := seq.begin()
	second := seq.begin()

	// The second rebuild finishes first
	assert.True(t, seq.accept(second))
	assert.False(t, seq.accept(first), "older rebuild must not replace the newer scene")

	third := seq.begin()
	assert.True(t, seq.accept(third))
	assert.False(t, seq.accept(third), "a rebuild is shown once")
}
