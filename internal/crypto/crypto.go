// Package crypto wraps fernet token encryption for secrets persisted in the
// database, currently the per-user quote-provider API keys.
package crypto

import (
	"fmt"
	"log"

	"github.com/fernet/fernet-go"
)

// Encryptor encrypts and decrypts short secrets with a single fernet key.
type Encryptor struct {
	key *fernet.Key
}

// NewEncryptor creates an Encryptor from a base64-encoded fernet secret.
// When the secret is empty a random per-process key is generated; values
// encrypted with it will not be decryptable after a restart, so a warning
// is logged.
func NewEncryptor(secret string) (*Encryptor, error) {
	if secret == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate fernet key: %w", err)
		}
		log.Println("WARNING: FERNET_SECRET not set, using a random key; encrypted values will not survive a restart")
		return &Encryptor{key: &key}, nil
	}

	key, err := fernet.DecodeKey(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet secret: %w", err)
	}
	return &Encryptor{key: key}, nil
}

// Encrypt returns the fernet token for the given plaintext.
// Empty input is passed through unchanged.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	token, err := fernet.EncryptAndSign([]byte(plaintext), e.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt value: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token. Empty input is passed
// through unchanged. Tokens do not expire (ttl 0).
func (e *Encryptor) Decrypt(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{e.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt value: invalid token")
	}
	return string(plaintext), nil
}
