package library

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Sha256Sum hashes strings and byte slices as-is. Anything else is hashed by its JSON encoding, and
// a value that cannot be encoded has no hash: the result is empty.
func Sha256Sum(data interface{}) Sha256 {
	var b []byte
	switch d := data.(type) {
	case string:
		b = []byte(d)
	case []byte:
		b = d
	default:
		var err error
		if b, err = json.Marshal(d); err != nil {
			LogCLI(fmt.Sprintf("attempted to hash a value that cannot be encoded: %s", err), 1)
			return ""
		}
	}
	h := sha256.New()
	h.Write(b)
	return fmt.Sprintf("%x", h.Sum(nil))
}
