package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
)

func EncryptMessage(key []byte, message string) (string, error) {
	plaintext := []byte(message)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	cipherText := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(cipherText), nil
}

func DecryptMessage(key []byte, message string) (string, error) {
	cipherText, err := hex.DecodeString(message)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(cipherText) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}

	decryptedData, err := gcm.Open(nil, cipherText[:gcm.NonceSize()], cipherText[gcm.NonceSize():], nil)
	if err != nil {
		return "", err
	}
	return string(decryptedData), nil
}

// SealProviderToken encrypts a provider token with the hex-encoded key.
// Without a key the token is stored as received.
func SealProviderToken(hexKey string, token string) (string, error) {
	if hexKey == "" || token == "" {
		return token, nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return "", err
	}
	return EncryptMessage(key, token)
}

func OpenProviderToken(hexKey string, sealed string) (string, error) {
	if hexKey == "" || sealed == "" {
		return sealed, nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return "", err
	}
	return DecryptMessage(key, sealed)
}
