package typesys

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// highwayhash wants a fixed 32-byte key; bucketing needs no secrecy.
var bucketKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// bucketHash hashes data into a bucket index via highwayhash.New64. A
// hashing failure (which highwayhash only returns for a malformed key,
// never for this call site) degrades to bucket 0 rather than panicking,
// since bucketing only narrows the registry's linear equality scan.
func bucketHash(data []byte) uint64 {
	h, err := highwayhash.New64(bucketKey)
	if err != nil {
		return 0
	}
	_, _ = h.Write(data)
	return h.Sum64()
}

const bucketCount = 64

func bucketFor(data []byte) int {
	return int(bucketHash(data) % bucketCount)
}

func primitiveKey(k PrimitiveKind) []byte {
	return []byte{byte(k)}
}

func stringSliceKey(k StringSliceKind) []byte {
	return []byte{byte(k)}
}

func pathKey(sym string) []byte {
	return []byte("path:" + sym)
}

func compositeKey(tag byte, elems []*TypeHandle, extra ...byte) []byte {
	data := []byte{tag}
	data = append(data, extra...)
	for _, e := range elems {
		data = append(data, []byte(fmt.Sprintf("%p", e))...)
		data = append(data, ',')
	}
	return data
}
