package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Centralising how the two 64-bit PCG seeds are derived keeps every call
// site reproducible for a given seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Shard returns an independent substream for a worker. Worker streams must
// not overlap the base stream or each other, so the shard index is folded
// into the seed before mixing.
func Shard(seed int64, shard int) *rand.Rand {
	u := uint64(seed) + uint64(shard+1)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// mix is the splitmix64 finalizer; it spreads low-entropy seeds across the
// full 64-bit space.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
