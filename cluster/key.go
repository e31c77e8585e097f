package cluster

import "github.com/spaolacci/murmur3"

// HashKey digests an arbitrary byte key into the uint64 data key expected
// by CalcCandidates. The digest is murmur3, which is stable across
// processes and platforms; placement itself never hashes, so callers whose
// keys are already integers need not go through here.
func HashKey(key []byte) uint64 {
	return murmur3.Sum64(key)
}

// HashString is HashKey for string keys.
func HashString(key string) uint64 {
	return murmur3.Sum64([]byte(key))
}
