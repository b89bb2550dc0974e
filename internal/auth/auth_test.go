package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("pw123456")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123456", hash, "stored hash must never equal the raw password")
	assert.True(t, CheckPassword(hash, "pw123456"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestHashPassword_SaltPerRecord(t *testing.T) {
	h1, err := HashPassword("pw123456")
	require.NoError(t, err)
	h2, err := HashPassword("pw123456")
	require.NoError(t, err)

	// bcrypt embeds a fresh salt, so equal passwords hash differently
	assert.NotEqual(t, h1, h2)
}

func TestTokenMaker_IssueAndParse(t *testing.T) {
	m := NewTokenMaker("test-secret-1234567890", 30*time.Minute)

	tok, err := m.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-42", uid)
}

func TestTokenMaker_Expiry(t *testing.T) {
	m := NewTokenMaker("test-secret-1234567890", -time.Minute)

	tok, err := m.Issue("user-42")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrBadToken)
}

func TestTokenMaker_RejectsBadTokens(t *testing.T) {
	m := NewTokenMaker("test-secret-1234567890", 15*time.Minute)
	other := NewTokenMaker("another-secret", 15*time.Minute)

	valid, err := m.Issue("user-42")
	require.NoError(t, err)

	tests := []struct {
		name string
		tok  string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", mustIssue(t, other, "user-42")},
		{"truncated", valid[:len(valid)-5]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.tok)
			assert.Error(t, err)
		})
	}
}

func mustIssue(t *testing.T, m *TokenMaker, uid string) string {
	t.Helper()
	tok, err := m.Issue(uid)
	require.NoError(t, err)
	return tok
}
