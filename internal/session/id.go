package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	idAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLength = 9
)

// newSessionID builds an identifier unique with overwhelming probability: the
// creation time in milliseconds plus a random alphanumeric suffix.
func newSessionID(now time.Time) string {
	suffix, err := randomID(idSuffixLength)
	if err != nil {
		// crypto/rand failing is effectively fatal elsewhere; here a UUID
		// keeps session creation going.
		suffix = uuid.NewString()[:idSuffixLength]
	}
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)
}

func randomID(length int) (string, error) {
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			return "", err
		}
		result[i] = idAlphabet[n.Int64()]
	}
	return string(result), nil
}
