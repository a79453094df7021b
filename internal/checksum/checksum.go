// Package checksum computes the order-independent fingerprint used to
// verify pipeline output.
package checksum

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
)

// ChecksumOf returns the SHA-1 digest of the given records as a lowercase
// hex string.
//
// The records are copied, sorted bytewise, and their raw UTF-8 bytes fed to
// the hash in sorted order. Sorting makes the digest insensitive to shard
// count and worker write order: only the multiset of records matters.
// Duplicate records are preserved, not deduplicated.
func ChecksumOf(records []string) string {
	sorted := make([]string, len(records))
	copy(sorted, records)
	sort.Strings(sorted)

	h := sha1.New()
	for _, record := range sorted {
		h.Write([]byte(record))
	}
	return hex.EncodeToString(h.Sum(nil))
}
