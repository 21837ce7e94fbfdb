package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// GameIndex returns a deterministic catalog index for a date using
// HMAC(salt, YYYY-MM-DD) % catalogSize. Every player gets the same target
// on the same day without storing it anywhere.
func GameIndex(date time.Time, salt string, catalogSize int) int {
	if catalogSize <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(catalogSize))
}
