package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequestPasswordLength(t *testing.T) {
	assert := assert.New(t)

	req := RegisterRequest{Name: "A", Email: "a@x.com", Age: 30}

	req.Password = strings.Repeat("a", 72)
	assert.Nil(req.Validate())

	req.Password = strings.Repeat("a", 73)
	assert.NotNil(req.Validate())

	// 36 runes, 72 bytes
	req.Password = strings.Repeat("ж", 36)
	assert.Nil(req.Validate())

	// 37 runes, 74 bytes
	req.Password = strings.Repeat("ж", 37)
	err := req.Validate()
	if assert.NotNil(err) {
		assert.Contains(err.Error(), "password")
	}
}
