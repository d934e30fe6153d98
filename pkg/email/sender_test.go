package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailValid(t *testing.T) {
	assert.True(t, IsEmailValid("jane@example.org"))
	assert.True(t, IsEmailValid("jane+tag@sub.example.org"))
	assert.False(t, IsEmailValid("jane"))
	assert.False(t, IsEmailValid("jane@"))
	assert.False(t, IsEmailValid("@example.org"))
}

func TestSendEmailInputValidate(t *testing.T) {
	input := SendEmailInput{To: "jane@example.org", Subject: "hi", Body: "<p>hi</p>"}
	assert.NoError(t, input.Validate())

	assert.Error(t, (&SendEmailInput{Subject: "hi", Body: "b"}).Validate())
	assert.Error(t, (&SendEmailInput{To: "jane@example.org"}).Validate())
	assert.Error(t, (&SendEmailInput{To: "not-an-email", Subject: "hi", Body: "b"}).Validate())
}
