// internal/service/mailer.go
package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"mail-sender/internal/config"
	"mail-sender/internal/email"
	"mail-sender/pkg/models"
)

// Collaborator contracts for the pipeline stages. Concrete
// implementations live in internal/template, internal/ics,
// internal/qrbill and internal/email.
type (
	TemplateStore interface {
		Load(name string) (string, error)
	}
	Renderer interface {
		Render(src string, params map[string]any) (string, error)
	}
	ICSResolver interface {
		Resolve(name string) (email.Attachment, error)
	}
	DocumentFetcher interface {
		Fetch(ctx context.Context, params json.RawMessage) ([]byte, error)
	}
	DocumentConverter interface {
		Convert(svg []byte) (email.Attachment, error)
	}
	Deliverer interface {
		Send(ctx context.Context, gm *gomail.Message) error
	}
)

// MailerService runs the request-to-delivery pipeline. Stages execute in
// a fixed order and the first failure aborts the request; no partial
// message is ever handed to the relay.
type MailerService struct {
	cfg       *config.Config
	templates TemplateStore
	renderer  Renderer
	ics       ICSResolver
	fetcher   DocumentFetcher
	converter DocumentConverter
	deliverer Deliverer
}

func NewMailerService(
	cfg *config.Config,
	templates TemplateStore,
	renderer Renderer,
	ics ICSResolver,
	fetcher DocumentFetcher,
	converter DocumentConverter,
	deliverer Deliverer,
) *MailerService {
	return &MailerService{
		cfg:       cfg,
		templates: templates,
		renderer:  renderer,
		ics:       ics,
		fetcher:   fetcher,
		converter: converter,
		deliverer: deliverer,
	}
}

// Send authenticates the caller and drives one request through the
// pipeline. The secret check runs first so an unauthenticated caller can
// neither probe for template existence nor trigger an external call.
func (s *MailerService) Send(ctx context.Context, secret string, req *models.SendRequest) error {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.ExpectedSecret)) != 1 {
		return ErrUnauthorized
	}

	src, err := s.templates.Load(req.TemplateName)
	if err != nil {
		log.Printf("❌ [PIPELINE] Template lookup failed for %q: %v", req.TemplateName, err)
		return fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
	}

	body, err := s.renderer.Render(src, req.Parameters)
	if err != nil {
		log.Printf("❌ [PIPELINE] Template render failed for %q: %v", req.TemplateName, err)
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	msg := &email.Message{
		From:     s.cfg.SMTPFrom,
		To:       req.EmailAddress,
		Subject:  req.Subject,
		HTMLBody: body,
	}

	if req.ICSName != nil {
		att, err := s.ics.Resolve(*req.ICSName)
		if err != nil {
			log.Printf("❌ [PIPELINE] ICS lookup failed for %q: %v", *req.ICSName, err)
			return fmt.Errorf("%w: %v", ErrAttachmentNotFound, err)
		}
		msg.Attachments = append(msg.Attachments, att)
	}

	if req.WantsQRBill() {
		svg, err := s.fetcher.Fetch(ctx, req.QRBillParams)
		if err != nil {
			log.Printf("❌ [PIPELINE] QR bill generation failed: %v", err)
			return fmt.Errorf("%w: %v", ErrDocumentService, err)
		}
		att, err := s.converter.Convert(svg)
		if err != nil {
			log.Printf("❌ [PIPELINE] QR bill conversion failed: %v", err)
			return fmt.Errorf("%w: %v", ErrDocumentConversion, err)
		}
		msg.Attachments = append(msg.Attachments, att)
	}

	gm, err := msg.Build()
	if err != nil {
		log.Printf("❌ [PIPELINE] Message assembly failed for %q: %v", req.EmailAddress, err)
		return fmt.Errorf("%w: %v", ErrMessageAssembly, err)
	}

	if err := s.deliverer.Send(ctx, gm); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	log.Printf("✅ [PIPELINE] Delivered %q to %s (%d attachments)",
		req.TemplateName, req.EmailAddress, len(msg.Attachments))
	return nil
}
