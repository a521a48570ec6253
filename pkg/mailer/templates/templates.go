package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"strings"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const VerifyEmail = "verify_email"

// EmailData carries the fields the verification email template renders.
type EmailData struct {
	Email         string `json:"Email"`
	AppName       string `json:"AppName"`
	VerifyURL     string `json:"VerifyURL"`
	ExpiresInText string `json:"ExpiresInText"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// NewVerifyEmailData builds the payload for a verification email.
func NewVerifyEmailData(appName, email, verifyURL string, ttl time.Duration) EmailData {
	return EmailData{
		Email:         email,
		AppName:       appName,
		VerifyURL:     verifyURL,
		ExpiresInText: formatTTL(ttl),
	}
}

func formatTTL(ttl time.Duration) string {
	mins := int(ttl.Round(time.Minute).Minutes())
	if mins <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", mins)
}

// Subject returns the subject line for a template name.
func Subject(template string) string {
	switch strings.ToLower(template) {
	case VerifyEmail:
		return "Verify your email address"
	default:
		return "Notification"
	}
}

// RenderHTML renders the named template with data into an HTML body.
func RenderHTML(name string, data map[string]any) (string, error) {
	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
