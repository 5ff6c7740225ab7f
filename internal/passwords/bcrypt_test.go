package passwords

import (
	"strings"
	"testing"

	"github.com/sbilibin2017/gw-inventory/internal/models"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashNeverEqualsPlaintext(t *testing.T) {
	h := New(WithCost(bcrypt.MinCost))

	for _, p := range []string{"a", "abc12345", "pässwörd", strings.Repeat("x", 64)} {
		hash, err := h.Hash(p)
		assert.NoError(t, err)
		assert.NotEqual(t, p, hash)
		assert.NotContains(t, hash, p)
	}
}

func TestHasher_RoundTrip(t *testing.T) {
	h := New(WithCost(bcrypt.MinCost))

	tests := []struct {
		name  string
		set   string
		check string
		want  bool
	}{
		{name: "same password", set: "abc12345", check: "abc12345", want: true},
		{name: "different password", set: "abc12345", check: "diferente", want: false},
		{name: "case differs", set: "Secret", check: "secret", want: false},
		{name: "prefix", set: "abc12345", check: "abc1234", want: false},
		{name: "empty check", set: "abc12345", check: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &models.UserDB{}
			assert.NoError(t, u.SetPassword(h, tt.set))
			assert.Equal(t, tt.want, u.CheckPassword(h, tt.check))
		})
	}
}

func TestHasher_SaltedHashesDiffer(t *testing.T) {
	h := New(WithCost(bcrypt.MinCost))

	a, err := h.Hash("abc12345")
	assert.NoError(t, err)
	b, err := h.Hash("abc12345")
	assert.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Check(a, "abc12345"))
	assert.True(t, h.Check(b, "abc12345"))
}

func TestHasher_CheckMalformedHash(t *testing.T) {
	h := New()
	assert.False(t, h.Check("", "anything"))
	assert.False(t, h.Check("not-a-bcrypt-hash", "anything"))
}

func TestWithCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, New().cost)
	assert.Equal(t, 12, New(WithCost(12)).cost)
	assert.Equal(t, bcrypt.DefaultCost, New(WithCost(1)).cost)
	assert.Equal(t, bcrypt.DefaultCost, New(WithCost(99)).cost)
}

func TestHasher_TooLongPassword(t *testing.T) {
	h := New(WithCost(bcrypt.MinCost))

	_, err := h.Hash(strings.Repeat("x", 100))
	assert.Error(t, err)
}
