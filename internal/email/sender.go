// internal/email/sender.go
package email

import (
	"context"
	"fmt"
	"log"
	"time"

	gomail "gopkg.in/gomail.v2"

	"mail-sender/internal/config"
)

// Sender delivers assembled messages through the configured SMTP relay.
// Each call opens its own session (STARTTLS, authenticated), sends to the
// single recipient and tears the session down. One attempt, one outcome;
// retrying is the caller's business.
type Sender struct {
	dialer  *gomail.Dialer
	timeout time.Duration
}

func NewSender(cfg *config.Config) *Sender {
	return &Sender{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		timeout: cfg.SMTPTimeout,
	}
}

// Send transmits gm to the relay. The dial-and-send runs on its own
// goroutine under a deadline of its own: the incoming request context has
// no per-request cancellation (the server's done channel fires only at
// shutdown), and the gomail dialer carries no timeout, so without the
// deadline a hung relay would hold the request goroutine indefinitely.
func (s *Sender) Send(ctx context.Context, gm *gomail.Message) error {
	to := gm.GetHeader("To")
	log.Printf("📧 [SEND] To: %v | Host: %s", to, s.dialer.Host)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(gm)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("❌ [SEND] Delivery failed for %v: %v", to, err)
			return fmt.Errorf("smtp send: %w", err)
		}
		log.Printf("✅ [SEND] Message accepted by relay for %v", to)
		return nil
	case <-ctx.Done():
		log.Printf("⚠️ [SEND] Delivery abandoned for %v: %v", to, ctx.Err())
		return fmt.Errorf("smtp send cancelled: %w", ctx.Err())
	}
}
