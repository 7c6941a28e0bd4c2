package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	itemPrefix      = "item:"
	itemOrderPrefix = "iord:"
	itemSeqPrefix   = "iseq:"
	itemOrderSeq    = "iordseq"
)

// makeItemKey generates a key for an item by ID.
func makeItemKey(id string) []byte {
	return []byte(itemPrefix + id)
}

// makeItemOrderKey generates a key for the insertion-order index.
// Format: prefix + 8-byte sequence number
func makeItemOrderKey(seq uint64) []byte {
	buf := make([]byte, len(itemOrderPrefix)+8)
	offset := copy(buf, itemOrderPrefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeItemSeqKey generates a key mapping an item ID to its sequence number.
func makeItemSeqKey(id string) []byte {
	return []byte(itemSeqPrefix + id)
}

func encodeSeq(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}

func decodeSeq(val []byte) (uint64, bool) {
	if len(val) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(val), true
}
