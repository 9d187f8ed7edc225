package download

import (
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// checksumVerifier hashes everything written through it and compares
// the digest with the expected value once the copy is complete.
type checksumVerifier struct {
	hash     hash.Hash
	expected string
}

func (v *checksumVerifier) Write(p []byte) (int, error) {
	return v.hash.Write(p)
}

func (v *checksumVerifier) Verify() error {
	if v == nil {
		return nil
	}

	actual := hex.EncodeToString(v.hash.Sum(nil))
	if !strings.EqualFold(actual, v.expected) {
		return &Error{
			Err:    ErrChecksumMismatch,
			Detail: fmt.Sprintf("expected %s, got %s", v.expected, actual),
		}
	}

	return nil
}

// trimAlgorithm drops an "algo:" prefix, the form backup checksums
// take in panel responses ("sha1:9f2c...").
func trimAlgorithm(checksum string) string {
	if _, digest, ok := strings.Cut(checksum, ":"); ok {
		return digest
	}

	return checksum
}
