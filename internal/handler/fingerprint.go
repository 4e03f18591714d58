package handler

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// emailFingerprint returns a short stable digest of an e-mail address so log
// lines can be correlated without recording the address itself.
func emailFingerprint(email string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:8])
}
