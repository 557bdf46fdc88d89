package uniuri

import "crypto/rand"

// StdLen is the default length of a generated string, ~95 bits of entropy.
const StdLen = 16

// StdChars is the character set used for generated strings.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of the standard length.
func New() string {
	return NewLen(StdLen)
}

// NewLen returns a random string of the provided length built from StdChars.
// Random bytes are rejection-sampled to keep the character distribution
// uniform.
func NewLen(length int) string {
	if length <= 0 {
		return ""
	}

	clen := len(StdChars)
	// largest byte value that maps onto the charset without modulo bias
	maxRb := 255 - (256 % clen)

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			if int(rb) > maxRb {
				continue
			}

			out = append(out, StdChars[int(rb)%clen])
			if len(out) == length {
				return string(out)
			}
		}
	}
}
