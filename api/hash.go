package api

import "github.com/minio/highwayhash"

// hashKey is fixed rather than random so that ContentHash is stable
// across process restarts and across the two sides of a comparison run
// in the same invocation.
var hashKey = []byte("REVAPI0123456789REVAPI0123456789")

// ContentHash returns a 64-bit hash of data. Analyzers use it to give an
// Element a cheap fingerprint of its raw source text (a method body, a
// field initializer, ...), which lets a Check such as "implementation
// changed" compare two elements without holding onto their full source.
func ContentHash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err = hash.Write(data); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}
