package http

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mail-sender/internal/service"
	"mail-sender/pkg/models"
)

type stubMailer struct {
	err        error
	calls      int
	gotSecret  string
	gotRequest *models.SendRequest
}

func (s *stubMailer) Send(ctx context.Context, secret string, req *models.SendRequest) error {
	s.calls++
	s.gotSecret = secret
	s.gotRequest = req
	return s.err
}

func newTestApp(mailer MailSender) *fiber.App {
	app := fiber.New()
	h := NewHandler(mailer)
	grp := app.Group("/mail-sender")
	grp.Get("/", h.Usage)
	grp.Post("/send", h.Send)
	return app
}

func TestUsage(t *testing.T) {
	app := newTestApp(&stubMailer{})

	resp, err := app.Test(httptest.NewRequest("GET", "/mail-sender/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "POST /send")
	assert.Contains(t, string(body), "template_name")
}

func TestSend_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"accepted", nil, fiber.StatusOK},
		{"bad secret", service.ErrUnauthorized, fiber.StatusUnauthorized},
		{"template missing", service.ErrTemplateNotFound, fiber.StatusInternalServerError},
		{"render failed", service.ErrTemplateRender, fiber.StatusInternalServerError},
		{"ics missing", service.ErrAttachmentNotFound, fiber.StatusInternalServerError},
		{"generator down", service.ErrDocumentService, fiber.StatusInternalServerError},
		{"conversion failed", service.ErrDocumentConversion, fiber.StatusInternalServerError},
		{"assembly failed", service.ErrMessageAssembly, fiber.StatusInternalServerError},
		{"relay rejected", service.ErrDelivery, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &stubMailer{err: tt.err}
			app := newTestApp(mailer)

			req := httptest.NewRequest("POST", "/mail-sender/send?secret=s3cret",
				strings.NewReader(`{"template_name":"welcome","email_address":"ada@example.com","subject":"Hi","parameters":{"name":"Ada"}}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			assert.Equal(t, 1, mailer.calls)
			assert.Equal(t, "s3cret", mailer.gotSecret)
		})
	}
}

func TestSend_WrappedErrorsStillMap(t *testing.T) {
	mailer := &stubMailer{err: errors.Join(service.ErrUnauthorized)}
	app := newTestApp(mailer)

	req := httptest.NewRequest("POST", "/mail-sender/send?secret=nope",
		strings.NewReader(`{"template_name":"welcome"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSend_DecodesRequest(t *testing.T) {
	mailer := &stubMailer{}
	app := newTestApp(mailer)

	body := `{
		"template_name": "invoice",
		"email_address": "ada@example.com",
		"subject": "Your invoice",
		"parameters": {"name": "Ada", "items": ["a", "b"]},
		"ics_name": "assembly",
		"qrbill_params": {"amount": 42}
	}`
	req := httptest.NewRequest("POST", "/mail-sender/send?secret=s3cret", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	got := mailer.gotRequest
	require.NotNil(t, got)
	assert.Equal(t, "invoice", got.TemplateName)
	assert.Equal(t, "ada@example.com", got.EmailAddress)
	assert.Equal(t, "Your invoice", got.Subject)
	assert.Equal(t, "Ada", got.Parameters["name"])
	require.NotNil(t, got.ICSName)
	assert.Equal(t, "assembly", *got.ICSName)
	assert.JSONEq(t, `{"amount": 42}`, string(got.QRBillParams))
}

func TestSend_InvalidBody(t *testing.T) {
	mailer := &stubMailer{}
	app := newTestApp(mailer)

	req := httptest.NewRequest("POST", "/mail-sender/send?secret=s3cret",
		strings.NewReader("this is not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, mailer.calls)
}
