package auth

import (
	"testing"
	"time"

	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
)

const testSecret = "confirmation-code-test-secret-value!"

func testUser() *models.User {
	return &models.User{
		ID:        "3f6c9a2e-0000-0000-0000-000000000001",
		Username:  "alice",
		Email:     "alice@example.com",
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMakeConfirmationCode_Stable(t *testing.T) {
	user := testUser()

	first := MakeConfirmationCode(testSecret, user)
	second := MakeConfirmationCode(testSecret, user)

	assert.Equal(t, first, second)
	assert.Len(t, first, confirmationCodeLen)
	assert.True(t, CheckConfirmationCode(testSecret, user, first))
}

func TestCheckConfirmationCode_TrimsWhitespace(t *testing.T) {
	user := testUser()
	code := MakeConfirmationCode(testSecret, user)

	assert.True(t, CheckConfirmationCode(testSecret, user, "  "+code+"\n"))
}

func TestConfirmationCode_InvalidatedByLogin(t *testing.T) {
	user := testUser()
	code := MakeConfirmationCode(testSecret, user)

	at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	user.LastLogin = &at

	assert.False(t, CheckConfirmationCode(testSecret, user, code))
}

func TestConfirmationCode_InvalidatedByProfileChange(t *testing.T) {
	user := testUser()
	code := MakeConfirmationCode(testSecret, user)

	user.UpdatedAt = user.UpdatedAt.Add(time.Second)

	assert.False(t, CheckConfirmationCode(testSecret, user, code))
}

func TestConfirmationCode_SecretBound(t *testing.T) {
	user := testUser()
	code := MakeConfirmationCode(testSecret, user)

	assert.False(t, CheckConfirmationCode("another-secret-another-secret-value!", user, code))
}

func TestConfirmationCode_WrongValueRejected(t *testing.T) {
	user := testUser()

	assert.False(t, CheckConfirmationCode(testSecret, user, "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"))
	assert.False(t, CheckConfirmationCode(testSecret, user, ""))
}
