// internal/transport/http/handlers.go
package http

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mail-sender/internal/service"
	"mail-sender/pkg/models"
)

const usage = `
    USAGE

      POST /send

          accepts a JSON object with the following keys:

            - template_name: the name of the template to use
            - email_address: the email address to send the email to
            - subject: the subject of the email
            - parameters: a map of parameters to pass to the template
            - ics_name: the name of the ICS file to attach (optional)
            - qrbill_params: a JSON object with the parameters for the QR bill (optional)

          as well as a secret key in the "secret" query parameter
    `

// MailSender is the slice of the pipeline the handler needs.
type MailSender interface {
	Send(ctx context.Context, secret string, req *models.SendRequest) error
}

type Handler struct {
	mailer MailSender
}

func NewHandler(mailer MailSender) *Handler {
	return &Handler{mailer: mailer}
}

// Usage answers GET / with a static description of the send endpoint.
func (h *Handler) Usage(c *fiber.Ctx) error {
	return c.SendString(usage)
}

// Send drives one request through the pipeline. The caller only sees a
// bare status code: 200 accepted, 401 bad secret, 400 unparseable body,
// 500 for every other failure. The finer-grained taxonomy is in the logs.
func (h *Handler) Send(c *fiber.Ctx) error {
	reqID := uuid.NewString()

	var req models.SendRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("❌ [HTTP %s] Invalid request body: %v", reqID, err)
		return c.SendStatus(fiber.StatusBadRequest)
	}

	log.Printf("📬 [HTTP %s] Send request | Template: %s | To: %s | ICS: %v | QRBill: %v",
		reqID, req.TemplateName, req.EmailAddress, req.ICSName != nil, req.WantsQRBill())

	err := h.mailer.Send(c.Context(), c.Query("secret"), &req)
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusOK)
	case errors.Is(err, service.ErrUnauthorized):
		log.Printf("❌ [HTTP %s] Rejected: bad secret | IP=%s", reqID, c.IP())
		return c.SendStatus(fiber.StatusUnauthorized)
	default:
		log.Printf("❌ [HTTP %s] Pipeline failed: %v", reqID, err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
}
