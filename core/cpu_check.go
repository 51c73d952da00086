package core

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"
)

// init reports whether the distance kernels run SIMD-accelerated.
// The vek library falls back to scalar code on CPUs without AVX2,
// so this only logs instead of failing.
func init() {
	if cpu.X86.HasAVX2 {
		log.Debug().Msg("AVX2 available; distance kernels are SIMD-accelerated")
	} else {
		log.Debug().Msg("AVX2 not available; distance kernels use the scalar fallback")
	}
}
