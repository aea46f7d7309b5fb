package element

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"slices"
)

func writeField(h hash.Hash, value string) {
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(value)))
	h.Write(length[:])
	h.Write([]byte(value))
}

// digest hashes kind, action, method and the inputs sorted by name, every
// component length prefixed. Input order does not contribute.
func (b *Base) digest() [sha256.Size]byte {
	h := sha256.New()
	writeField(h, string(b.kind))
	writeField(h, b.action)
	writeField(h, string(b.method))

	pairs := b.inputs.Pairs()
	slices.SortFunc(pairs, func(a, b Pair) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})

	var count [8]byte
	binary.BigEndian.PutUint64(count[:], uint64(len(pairs)))
	h.Write(count[:])
	for _, p := range pairs {
		writeField(h, p.Name)
		writeField(h, p.Value)
	}

	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}

// IdentityKey identifies the element by kind, action, method and inputs.
// It is recomputed on every call since inputs may change in between.
func (b *Base) IdentityKey() string {
	sum := b.digest()
	return hex.EncodeToString(sum[:])
}

func (b *Base) Hash() uint64 {
	sum := b.digest()
	return binary.BigEndian.Uint64(sum[:8])
}

// Equal reports whether other has the same kind, action, method and input
// pairs, regardless of input order.
func (b *Base) Equal(other Element) bool {
	o := baseOf(other)
	if o == nil {
		return false
	}
	return b.kind == o.kind &&
		b.action == o.action &&
		b.method == o.method &&
		b.inputs.Equal(o.inputs)
}
