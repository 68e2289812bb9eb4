package recovery

import (
	"errors"
	"strings"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
)

// Count is the number of codes in a generated set.
const Count = 10

// Hasher hashes codes with a server-side pepper and compares them in
// constant time.
type Hasher interface {
	HashWithPepper(code string) string
	VerifyCode(code, storedHash string) bool
}

// Generate returns Count fresh codes formatted as XXXX-XXXX. They are shown
// to the user once; only their hashes are kept.
func Generate() ([]string, error) {
	codes := make([]string, Count)
	for i := range codes {
		h, err := secrets.RandomHex(4)
		if err != nil {
			return nil, errors.Join(ErrGenerateFailed, err)
		}
		h = strings.ToUpper(h)
		codes[i] = h[:4] + "-" + h[4:]
	}
	return codes, nil
}

// Normalize strips separators and whitespace and lowercases the code, so
// "ab12-CD34", "AB12CD34" and " ab12 cd34 " hash the same.
func Normalize(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t', '\n', '\r':
			return -1
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, code)
}

// HashAll returns the peppered hash of every normalized code, in order.
func HashAll(h Hasher, codes []string) []string {
	hashes := make([]string, len(codes))
	for i, c := range codes {
		hashes[i] = h.HashWithPepper(Normalize(c))
	}
	return hashes
}

// VerifyAndConsume looks for code among stored. On a match it returns true
// and a new slice without the matched hash; otherwise it returns false and
// stored unchanged. Every entry is compared so the scan takes the same time
// wherever the match is.
func VerifyAndConsume(h Hasher, stored []string, code string) (bool, []string) {
	normalized := Normalize(code)
	if normalized == "" {
		return false, stored
	}

	match := -1
	for i, hash := range stored {
		if h.VerifyCode(normalized, hash) && match < 0 {
			match = i
		}
	}
	if match < 0 {
		return false, stored
	}

	remaining := make([]string, 0, len(stored)-1)
	remaining = append(remaining, stored[:match]...)
	remaining = append(remaining, stored[match+1:]...)
	return true, remaining
}
