package quiz

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const idSuffixLen = 9

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID generates a question identifier: millisecond timestamp, a caller
// salt (position within a batch), and a random base36 suffix. Uniqueness is
// not cryptographically guaranteed; collision probability is negligible for
// interactive use.
func NewID(now time.Time, salt int) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteString(strconv.Itoa(salt))
	for range idSuffixLen {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}
