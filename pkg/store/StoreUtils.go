package store

import "encoding/binary"


//=========================================== Store Utils


/*
	slot keys are 16 bytes --> big endian term followed by big endian sequence,
	so lexicographic bolt key order matches (term, sequence) commit order
*/

func EncodeSlotKey(term int64, sequence int64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[0:8], uint64(term))
	binary.BigEndian.PutUint64(key[8:16], uint64(sequence))

	return key
}

func DecodeSlotKey(key []byte) (int64, int64) {
	term := int64(binary.BigEndian.Uint64(key[0:8]))
	sequence := int64(binary.BigEndian.Uint64(key[8:16]))

	return term, sequence
}
