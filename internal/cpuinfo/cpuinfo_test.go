package cpuinfo_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.alexhamlin.co/multiwork/internal/cpuinfo"
)

func TestCountOverride(t *testing.T) {
	t.Setenv(cpuinfo.EnvNumCPUs, "4")
	assert.Equal(t, 4, cpuinfo.Count())
}

func TestCountFallsBackToHardware(t *testing.T) {
	for _, value := range []string{"", "0", "-3", "4.5", "banana"} {
		t.Run("value="+value, func(t *testing.T) {
			t.Setenv(cpuinfo.EnvNumCPUs, value)
			assert.Equal(t, runtime.NumCPU(), cpuinfo.Count())
		})
	}
}

func TestCountPositive(t *testing.T) {
	assert.GreaterOrEqual(t, cpuinfo.Count(), 1)
}
