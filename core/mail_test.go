package core

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailMessage_Render(t *testing.T) {
	ctx := ContextData{AppName: "Yoga Studio", FrontendBaseURL: "http://yoga.test"}
	to := []mail.Address{{Name: "Asha", Address: "asha@test.cd"}}

	t.Run("plain body", func(t *testing.T) {
		msg := &EmailMessage{To: to, Subject: "Hi", BodyStr: "hello"}
		require.NoError(t, msg.Render(ctx))
		assert.Equal(t, "hello", msg.TextContent)
		assert.Empty(t, msg.HTMLContent)
		assert.True(t, msg.HasRecipients())
		assert.True(t, msg.HasContent())
	})

	t.Run("template", func(t *testing.T) {
		msg := &EmailMessage{
			To:           to,
			TemplateName: "password_reset",
			TemplateData: struct{ Name, UID, Token string }{"Asha", "dWlk", "ABC-sig"},
		}
		require.NoError(t, msg.Render(ctx))
		assert.Contains(t, msg.TextContent, "http://yoga.test/password-reset?uid=dWlk&token=ABC-sig")
		assert.Contains(t, msg.HTMLContent, "Yoga Studio")
	})

	t.Run("html only template", func(t *testing.T) {
		msg := &EmailMessage{To: to, TemplateName: "welcome", TemplateData: struct{ Name string }{"Asha"}}
		require.NoError(t, msg.Render(ctx))
		assert.Empty(t, msg.TextContent)
		assert.True(t, strings.Contains(msg.HTMLContent, "account is ready"))
	})

	t.Run("unknown template", func(t *testing.T) {
		msg := &EmailMessage{To: to, TemplateName: "lol"}
		assert.EqualError(t, msg.Render(ctx), `email template "lol" not found`)
		assert.False(t, msg.HasContent())
	})

	t.Run("no recipients", func(t *testing.T) {
		assert.False(t, (&EmailMessage{BodyStr: "hello"}).HasRecipients())
	})
}
