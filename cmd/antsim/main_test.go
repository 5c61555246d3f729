package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"antsim.dev/internal/sim/tuning"
)

func TestOverrideSpeed(t *testing.T) {
	tu := tuning.Defaults()
	require.NoError(t, overrideSpeed(&tu, 0))
	assert.Equal(t, tuning.Defaults().StartSpeed, tu.StartSpeed)

	require.NoError(t, overrideSpeed(&tu, 8))
	assert.Equal(t, 8, tu.StartSpeed)

	for _, bad := range []int{9, -1} {
		tu := tuning.Defaults()
		err := overrideSpeed(&tu, bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start_speed")
	}
}
