package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericnguyen1274/Customer---App/core"
)

func TestSendgridService_prepare(t *testing.T) {
	conf := core.NewTestConfig()
	svc := newSendgridService(conf, nil)
	to := []mail.Address{{Name: "Asha Rao", Address: "asha@test.cd"}}

	tests := []struct {
		name           string
		msg            core.EmailMessage
		wantCategories []string
		wantUntracked  bool
	}{
		{
			name:           "welcome",
			msg:            core.EmailMessage{To: to, Subject: "Welcome", TemplateName: "welcome", TextContent: "hi"},
			wantCategories: []string{"yoga studio", "welcome"},
		},
		{
			name:           "password reset",
			msg:            core.EmailMessage{To: to, Subject: "Password Reset", TemplateName: "password_reset", TextContent: "link"},
			wantCategories: []string{"yoga studio", "password_reset"},
			wantUntracked:  true,
		},
		{
			name:           "plain",
			msg:            core.EmailMessage{To: to, Subject: "Hi", TextContent: "hello"},
			wantCategories: []string{"yoga studio"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := svc.prepare(tt.msg)

			require.Len(t, m.Personalizations, 1)
			p := m.Personalizations[0]
			assert.Equal(t, "["+conf.AppName+"] "+tt.msg.Subject, p.Subject)
			require.Len(t, p.To, 1)
			assert.Equal(t, "asha@test.cd", p.To[0].Address)
			assert.Empty(t, p.CC)

			assert.Equal(t, tt.wantCategories, m.Categories)
			assert.Equal(t, conf.Env, m.CustomArgs["env"])
			require.Len(t, m.Content, 1)
			assert.Equal(t, "text/plain", m.Content[0].Type)

			untracked := m.TrackingSettings != nil && m.TrackingSettings.ClickTracking != nil &&
				!*m.TrackingSettings.ClickTracking.Enable
			if untracked != tt.wantUntracked {
				t.Errorf("failed! untracked = %v; want %v", untracked, tt.wantUntracked)
			}
		})
	}
}
