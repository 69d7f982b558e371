package cryptox

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// CredentialTokenLength is the total length of a credential token: the
	// fixed-width hex prefix followed by the random filler.
	CredentialTokenLength = 128

	credentialPrefixLength = 16 // %016X of a uint64
	credentialFillerLength = CredentialTokenLength - credentialPrefixLength

	credentialAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"
)

// ErrEntropy reports that the secure random source could not be read. Callers
// must abort the operation; there is no fallback source.
var ErrEntropy = errors.New("cryptox: secure random source unavailable")

// GenerateCredentialToken builds an opaque bearer token for externalID.
//
// The token is the external id rendered as 16 uppercase hex characters
// followed by 112 filler characters. The filler covers the remaining 56 bytes
// of the 64-byte budget at two characters per byte slot; every character is
// drawn from its own random byte masked to 6 bits, so each one is uniform over
// the 64-symbol alphabet.
func GenerateCredentialToken(random io.Reader, externalID uint64) (string, error) {
	buf := make([]byte, credentialFillerLength)
	if _, err := io.ReadFull(random, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropy, err)
	}

	var sb strings.Builder
	sb.Grow(CredentialTokenLength)
	sb.WriteString(CredentialTokenPrefix(externalID))
	for _, b := range buf {
		sb.WriteByte(credentialAlphabet[b&0x3F])
	}
	return sb.String(), nil
}

// CredentialTokenPrefix returns the hex prefix that GenerateCredentialToken
// would emit for externalID.
func CredentialTokenPrefix(externalID uint64) string {
	return fmt.Sprintf("%016X", externalID)
}
