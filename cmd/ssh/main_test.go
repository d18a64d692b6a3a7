package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeTrackerFollowsUpdates(t *testing.T) {
	tr := newSizeTracker(80, 24)
	w, h, err := tr.getSize()
	require.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	tr.update(120, 40)
	w, h, _ = tr.getSize()
	assert.Equal(t, 120, w)
	assert.Equal(t, 40, h)
}
