package analysis

import (
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDGenerator returns a new node id.
type IDGenerator func() (string, error)

// TimeRandomIDs builds ids from the unix-millis of now plus five random
// base-36 characters. Collisions are unlikely but not checked.
func TimeRandomIDs(now func() time.Time) IDGenerator {
	return func() (string, error) {
		suffix, err := gonanoid.Generate(idSuffixAlphabet, 5)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(now().UnixMilli(), 10) + suffix, nil
	}
}
