// Document digests.
//
// Each scanned document is reported with a 16 hex character digest so
// results can be joined against other tooling, and the index command uses
// it to scan identical revisions only once. The algorithm is chosen with
// the digest setting.
package main

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

const (
	digestXXH3    = "xxh3"
	digestFNV     = "fnv"
	digestBlake2b = "blake2b"
)

// digestSize is the digest length in bytes for every algorithm.
const digestSize = 8

// digester returns the digest function for the named algorithm.
func digester(alg string) (func([]byte) string, error) {
	switch alg {
	case digestXXH3:
		return func(doc []byte) string { return hex64(xxh3.Hash(doc)) }, nil
	case digestFNV:
		return func(doc []byte) string {
			h := fnv.New64a()
			h.Write(doc)
			return hex.EncodeToString(h.Sum(nil))
		}, nil
	case digestBlake2b:
		return func(doc []byte) string {
			h, _ := blake2b.New(digestSize, nil) // fails only for bad sizes or keys
			h.Write(doc)
			return hex.EncodeToString(h.Sum(nil))
		}, nil
	}
	return nil, fmt.Errorf("unknown digest algorithm %q: want %s, %s or %s", alg, digestXXH3, digestFNV, digestBlake2b)
}

// hex64 renders u big-endian, zero padded to 16 characters.
func hex64(u uint64) string {
	var b [digestSize]byte
	binary.BigEndian.PutUint64(b[:], u)
	return hex.EncodeToString(b[:])
}
