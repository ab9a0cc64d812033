package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"reviewhub/internal/httpapi/models"

	"golang.org/x/crypto/hkdf"
)

// Confirmation codes are stateless: nothing is stored server-side. A code is
// an HMAC over the user's identity and last_login, keyed per-user via HKDF
// from the server secret. Bumping last_login on a successful token exchange
// invalidates every code issued before it.

const confirmationInfo = "confirmation-code"

// confirmationCode derives the code for the user's current state.
func confirmationCode(secret []byte, user *models.User) (string, error) {
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, secret, []byte(user.ID), []byte(confirmationInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return "", fmt.Errorf("derive confirmation key: %w", err)
	}

	var lastLogin int64
	if user.LastLogin != nil {
		lastLogin = user.LastLogin.Unix()
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s|%s|%d", user.ID, user.Username, lastLogin)
	return hex.EncodeToString(mac.Sum(nil)[:16]), nil
}

// checkConfirmationCode verifies by recomputation, in constant time.
func checkConfirmationCode(secret []byte, user *models.User, code string) bool {
	want, err := confirmationCode(secret, user)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(want), []byte(code))
}
