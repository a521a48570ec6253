package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerifyEmail(t *testing.T) {
	data := NewVerifyEmailData("dealer-portal", "a@x.com", "http://localhost:3000/verify-email?token=abc123", 15*time.Minute)
	html, err := RenderHTML(VerifyEmail, ToMap(data))
	require.NoError(t, err)

	assert.Contains(t, html, "dealer-portal")
	assert.Contains(t, html, "a@x.com")
	assert.Contains(t, html, "token=abc123")
	assert.Contains(t, html, "15 minutes")
}

func TestRenderHTML_UnknownTemplate(t *testing.T) {
	_, err := RenderHTML("no_such_template", nil)
	assert.Error(t, err)
}

func TestFormatTTL(t *testing.T) {
	assert.Equal(t, "15 minutes", formatTTL(15*time.Minute))
	assert.Equal(t, "1 minute", formatTTL(time.Minute))
	assert.Equal(t, "1 minute", formatTTL(30*time.Second))
	assert.Equal(t, "2 minutes", formatTTL(2*time.Minute))
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Verify your email address", Subject("verify_email"))
	assert.Equal(t, "Verify your email address", Subject("VERIFY_EMAIL"))
	assert.Equal(t, "Notification", Subject("anything_else"))
}
