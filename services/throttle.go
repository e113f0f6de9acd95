package services

import (
	"encoding/hex"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Throttler decides whether a request with the given fingerprint should be
// rejected. No algorithm is mandated; plug one in via WithThrottler.
type Throttler interface {
	ShouldThrottle(fingerprint string) bool
}

// NoopThrottler never throttles. It is the default until a concrete policy
// (fixed window, token bucket) is chosen.
type NoopThrottler struct{}

func (NoopThrottler) ShouldThrottle(string) bool { return false }

// ThrottleFunc adapts a plain function to Throttler.
type ThrottleFunc func(fingerprint string) bool

func (f ThrottleFunc) ShouldThrottle(fingerprint string) bool { return f(fingerprint) }

// Fingerprint returns a keyed hash of form id, client address and the
// one-minute bucket containing at. The key keeps raw client addresses out of
// whatever store a throttle policy uses.
func Fingerprint(key []byte, formID, clientIP string, at time.Time) string {
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// unreachable: key length is bounded above
		panic(err)
	}
	bucket := at.UTC().Unix() / 60
	h.Write([]byte(formID))
	h.Write([]byte{0})
	h.Write([]byte(clientIP))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(bucket, 10)))
	return hex.EncodeToString(h.Sum(nil))
}
