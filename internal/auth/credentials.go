package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// VerifyCredentials checks the submitted pair against the single
// configured operator credential. The username comparison is exact and
// case-sensitive; the password is checked against a bcrypt hash. The
// result deliberately does not distinguish which of the two was wrong.
func VerifyCredentials(configuredUsername, configuredPasswordHash, username, password string) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(configuredUsername), []byte(username)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(configuredPasswordHash), []byte(password)) == nil
	return usernameOK && passwordOK
}
