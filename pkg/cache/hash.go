package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a stage-prefixed key of the form "prefix:hex(sha256)".
// The parts are JSON-encoded before hashing, so the key options structs
// participate through their json tags: an omitted optional field (an
// empty font name, a zero PNG scale) hashes the same as an absent one.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	// Full 64-char digest; keys are never displayed, so there is no
	// reason to truncate and weaken collision resistance.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data. The pipeline uses it to fingerprint
// content blobs (for layout keys) and serialized decisions (for artifact
// keys).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
