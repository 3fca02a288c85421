package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"hospitaladmin/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestTemplateRenderer_FeedbackReceived(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	data := &domain.FeedbackReceivedEmailData{
		FeedbackID:          "fb-1",
		PatientName:         "<Asha>",
		VisitDate:           "2025-03-01",
		VisitReason:         "Checkup",
		OverallSatisfaction: 2,
		NotedIssues:         "Long wait",
	}
	subject, html, text, err := r.Render("feedback_received", data)
	require.NoError(t, err)
	assert.Equal(t, "New patient feedback: overall 2/5", subject)
	assert.Contains(t, html, "&lt;Asha&gt;", "html body is escaped")
	assert.Contains(t, text, "Patient: <Asha>")
	assert.Contains(t, text, "Noted issues: Long wait")

	data.PatientName = ""
	data.NotedIssues = ""
	_, _, text, err = r.Render("feedback_received", data)
	require.NoError(t, err)
	assert.Contains(t, text, "Patient: anonymous")
	assert.NotContains(t, text, "Noted issues")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	_, _, _, err = r.Render("missing", nil)
	require.Error(t, err)
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "no-reply@example.com", FromName: "Hospital Admin"}, testLogger)

	require.NoError(t, m.Send(context.Background(), "admin@example.com", "Subj", "<p>hi</p>", ""))
	require.NotNil(t, client.input)
	assert.Equal(t, "Hospital Admin <no-reply@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"admin@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Nil(t, client.input.Message.Body.Text)

	client.err = errors.New("throttled")
	err := m.Send(context.Background(), "admin@example.com", "Subj", "", "plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewMailer_Providers(t *testing.T) {
	for _, p := range []string{"", "noop", "carrier-pigeon"} {
		m, err := NewMailer(MailerConfig{Provider: p}, testLogger)
		require.NoError(t, err)
		_, ok := m.(*noopMailer)
		assert.True(t, ok, "provider %q", p)
		require.NoError(t, m.Send(context.Background(), "a@b.c", "s", "", "t"))
	}

	m, err := NewMailer(MailerConfig{Provider: "ses", SES: SESConfig{Region: "us-east-1"}}, testLogger)
	require.NoError(t, err)
	_, ok := m.(*sesMailer)
	assert.True(t, ok)
}
