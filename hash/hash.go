// Package hash provides the blake3 hashing used for transaction ids, addresses and state commitments.
package hash

import (
	"sync"

	"github.com/zeebo/blake3"
)

// Size of a digest in bytes.
const Size = 32

var pool = &sync.Pool{
	New: func() any {
		return blake3.New()
	},
}

// GetHasher takes a blake3 hasher from the pool. The hasher is reset.
func GetHasher() *blake3.Hasher {
	return pool.Get().(*blake3.Hasher)
}

// PutHasher resets the hasher and returns it to the pool.
func PutHasher(hasher *blake3.Hasher) {
	hasher.Reset()
	pool.Put(hasher)
}

// Sum computes the digest over the concatenation of chunks.
func Sum(chunks ...[]byte) (rst [Size]byte) {
	hasher := GetHasher()
	defer PutHasher(hasher)
	for _, chunk := range chunks {
		hasher.Write(chunk)
	}
	hasher.Sum(rst[:0])
	return rst
}
