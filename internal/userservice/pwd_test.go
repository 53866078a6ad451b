package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordSet(t *testing.T) {
	var p Password

	err := p.set("Pa55word!")
	assert.NoError(t, err)
	assert.NotEmpty(t, p.hash)

	// the stored hash verifies against the original password and
	// nothing else
	assert.NoError(t, bcrypt.CompareHashAndPassword(p.hash, []byte("Pa55word!")))
	assert.ErrorIs(t, bcrypt.CompareHashAndPassword(p.hash, []byte("wrong")), bcrypt.ErrMismatchedHashAndPassword)
}
