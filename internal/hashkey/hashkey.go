// Package hashkey derives cache keys for uploaded blobs.
package hashkey

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Of returns the decimal string of a non-cryptographic 64-bit hash of
// payload. Two calls with identical bytes always produce the same key,
// which is exactly the property the upload/download handlers need: the
// key a downloader supplies must resolve to the same cache slot the
// uploader populated.
func Of(payload []byte) string {
	return strconv.FormatUint(xxhash.Sum64(payload), 10)
}
