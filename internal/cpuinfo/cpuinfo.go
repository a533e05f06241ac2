// Package cpuinfo resolves the effective parallelism width used to size
// execution pools.
package cpuinfo

import (
	"os"
	"runtime"
	"strconv"

	"go.alexhamlin.co/multiwork/internal/log"
)

// EnvNumCPUs is the environment variable that overrides the detected logical
// CPU count. It takes effect when set to a positive integer; any other value
// is ignored.
const EnvNumCPUs = "MULTIWORK_NUM_CPUS"

// Count returns the effective CPU count: the [EnvNumCPUs] override if it
// parses as a positive integer, or the hardware-reported logical CPU count.
// Count never returns less than 1.
func Count() int {
	if value := os.Getenv(EnvNumCPUs); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Verbosef("cpuinfo: ignoring %s=%q: not a positive integer", EnvNumCPUs, value)
	}
	return max(1, runtime.NumCPU())
}
