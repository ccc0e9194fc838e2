package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"reviewhub/internal/http-api/models"
)

const confirmationCodeLen = 40

// MakeConfirmationCode derives the signup confirmation code for a user. The
// digest covers every mutable part of the account, so a profile update, a
// password reset or a successful token issuance (which stamps last_login)
// invalidates codes issued earlier.
func MakeConfirmationCode(secret string, user *models.User) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s|%s|%s|%d|%d",
		user.ID, user.Username, user.Email, user.Password,
		lastLoginUnix(user), user.UpdatedAt.Unix())
	digest := hex.EncodeToString(mac.Sum(nil))
	return digest[:confirmationCodeLen]
}

// CheckConfirmationCode verifies a code against the user's current state.
func CheckConfirmationCode(secret string, user *models.User, code string) bool {
	expected := MakeConfirmationCode(secret, user)
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(code)))
}

func lastLoginUnix(user *models.User) int64 {
	if user.LastLogin == nil {
		return 0
	}
	return user.LastLogin.Unix()
}
