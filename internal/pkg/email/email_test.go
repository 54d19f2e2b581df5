package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	addr string
	from string
	to   []string
	msg  string
	err  error
}

func newTestService(cfg SMTPConfig, c *capture) *EmailServiceImpl {
	s := NewEmailService(cfg, zerolog.Nop())
	s.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		c.addr, c.from, c.to, c.msg = addr, from, to, string(msg)
		return c.err
	}
	return s
}

var testConfig = SMTPConfig{Host: "smtp.campus.edu", Port: 587, FromName: "CampusConnect", FromEmail: "noreply@campus.edu"}

func TestSendWelcomeEmail(t *testing.T) {
	c := &capture{}
	s := newTestService(testConfig, c)

	require.NoError(t, s.SendWelcomeEmail("ada@campus.edu", "Ada <Lovelace>"))
	assert.Equal(t, "smtp.campus.edu:587", c.addr)
	assert.Equal(t, "noreply@campus.edu", c.from)
	assert.Equal(t, []string{"ada@campus.edu"}, c.to)
	assert.Contains(t, c.msg, "Subject: Welcome to CampusConnect\r\n")
	assert.Contains(t, c.msg, "From: CampusConnect <noreply@campus.edu>\r\n")
	assert.Contains(t, c.msg, "Ada &lt;Lovelace&gt;")
}

func TestSendConnectionRequestEmail(t *testing.T) {
	c := &capture{}
	s := newTestService(testConfig, c)

	require.NoError(t, s.SendConnectionRequestEmail("grace@campus.edu", "Grace", "Ada", "Hi <b>there</b>"))
	assert.Contains(t, c.msg, "Subject: Ada wants to connect on CampusConnect")
	assert.Contains(t, c.msg, "Hi &lt;b&gt;there&lt;/b&gt;")
}

func TestSendFailureIsWrapped(t *testing.T) {
	c := &capture{err: errors.New("connection refused")}
	s := newTestService(testConfig, c)

	err := s.SendWelcomeEmail("ada@campus.edu", "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUnconfiguredServiceDropsMail(t *testing.T) {
	c := &capture{}
	s := newTestService(SMTPConfig{}, c)

	require.NoError(t, s.SendWelcomeEmail("ada@campus.edu", "Ada"))
	assert.Empty(t, c.addr)
}
