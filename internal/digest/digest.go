package digest

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// EncodedLength is the length of a hex-encoded SHA-256 digest.
const EncodedLength = 64

var (
	ErrInvalidDigest = errors.New("digest: Validate: invalid password digest")
	ErrWrongPassword = errors.New("digest: Validate: wrong password")
)

func FromPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func IsWellFormed(encoded string) bool {
	if len(encoded) != EncodedLength {
		return false
	}

	_, err := hex.DecodeString(encoded)
	return err == nil
}

func Validate(password, encoded string) error {
	if !IsWellFormed(encoded) {
		return ErrInvalidDigest
	}

	calced := FromPassword(password)

	if subtle.ConstantTimeCompare([]byte(calced), []byte(encoded)) != 1 {
		return ErrWrongPassword
	}

	return nil
}
