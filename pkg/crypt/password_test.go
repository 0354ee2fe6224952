package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestPassword(t *testing.T) {
	assert := assert.New(t)

	first, err := HashPassword("pw1", bcrypt.MinCost)
	assert.Nil(err)
	second, err := HashPassword("pw1", bcrypt.MinCost)
	assert.Nil(err)

	assert.NotEqual("pw1", first)
	assert.NotEqual(first, second, "salt must differ per hash")

	assert.Nil(ComparePassword(first, "pw1"))
	assert.Nil(ComparePassword(second, "pw1"))
	assert.ErrorIs(ComparePassword(first, "pw2"), ErrorPasswordMismatch)

	err = ComparePassword("not base64!", "pw1")
	assert.NotNil(err)
	assert.NotErrorIs(err, ErrorPasswordMismatch)

	_, err = HashPassword("", bcrypt.MinCost)
	assert.ErrorIs(err, ErrorEmptyPassword)
}
