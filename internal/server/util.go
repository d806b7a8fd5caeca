package server

import (
	"crypto/rand"
	"time"
)

// codeAlphabet drops 0/O/1/I so codes read unambiguously off a screen.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

const (
	roomCodeLength  = 6
	hostTokenLength = 32
)

func newRoomCode() string {
	return randomString(codeAlphabet, roomCodeLength)
}

// newHostToken is the sole host credential, so it always comes from
// crypto/rand.
func newHostToken() string {
	return randomString(tokenAlphabet, hostTokenLength)
}

func randomString(alphabet string, length int) string {
	// Rejection sampling keeps every symbol equally likely when 256 is not
	// a multiple of the alphabet size.
	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		// crypto/rand.Read never returns an error and always fills buf.
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out)
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
