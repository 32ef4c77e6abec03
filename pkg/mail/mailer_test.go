package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSMTPClient struct {
	from    string
	rcpts   []string
	data    bytes.Buffer
	quit    bool
	authRun bool
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (f *fakeSMTPClient) Mail(from string) error { f.from = from; return nil }
func (f *fakeSMTPClient) Rcpt(rcpt string) error { f.rcpts = append(f.rcpts, rcpt); return nil }
func (f *fakeSMTPClient) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&f.data}, nil
}
func (f *fakeSMTPClient) Quit() error                     { f.quit = true; return nil }
func (f *fakeSMTPClient) Close() error                    { return nil }
func (f *fakeSMTPClient) StartTLS(*tls.Config) error      { return nil }
func (f *fakeSMTPClient) Auth(smtp.Auth) error            { f.authRun = true; return nil }
func (f *fakeSMTPClient) Extension(string) (bool, string) { return false, "" }

func newFakeMailer(cfg SMTPSettings, client *fakeSMTPClient) *smtpMailer {
	server, _ := net.Pipe()
	return &smtpMailer{
		cfg: cfg,
		dialFn: func(context.Context, SMTPSettings) (net.Conn, smtpClient, error) {
			return server, client, nil
		},
		authFn: defaultAuthFunc,
	}
}

func TestSend_DisabledReturnsSentinel(t *testing.T) {
	mailer, err := NewSMTPMailer(SMTPSettings{Enabled: false})
	require.NoError(t, err)

	err = mailer.Send(context.Background(), Message{To: []string{"press@example.com"}})
	require.ErrorIs(t, err, ErrSMTPDisabled)
}

func TestSend_WritesHeadersAndBody(t *testing.T) {
	client := &fakeSMTPClient{}
	mailer := newFakeMailer(SMTPSettings{
		Enabled: true,
		Host:    "mail.example.com",
		Port:    587,
		From:    "noreply@pressdeck.io",
	}, client)

	err := mailer.Send(context.Background(), Message{
		To:      []string{"editor@example.com", "editor@example.com", " "},
		Subject: "Campaign update",
		Body:    "<p>Hallo</p>",
	})
	require.NoError(t, err)
	require.Equal(t, "noreply@pressdeck.io", client.from)
	require.Equal(t, []string{"editor@example.com"}, client.rcpts)
	require.Contains(t, client.data.String(), "Subject: Campaign update")
	require.Contains(t, client.data.String(), "Content-Type: text/html")
	require.Contains(t, client.data.String(), "<p>Hallo</p>")
	require.True(t, client.quit)
}

func TestSend_RejectsInvalidRecipient(t *testing.T) {
	client := &fakeSMTPClient{}
	mailer := newFakeMailer(SMTPSettings{Enabled: true, Host: "mail", Port: 25, From: "noreply@pressdeck.io"}, client)

	err := mailer.Send(context.Background(), Message{To: []string{"not-an-address"}})
	require.Error(t, err)
	require.Empty(t, client.rcpts)
}

func TestNewSMTPMailer_RequiresHostWhenEnabled(t *testing.T) {
	_, err := NewSMTPMailer(SMTPSettings{Enabled: true, Port: 25})
	require.Error(t, err)
}
