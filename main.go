package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"mail-sender/internal/config"
	"mail-sender/internal/email"
	"mail-sender/internal/ics"
	"mail-sender/internal/qrbill"
	"mail-sender/internal/service"
	"mail-sender/internal/template"
	transport "mail-sender/internal/transport/http"
)

var startTime time.Time

func main() {
	startTime = time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ [CONFIG] %v", err)
	}
	log.Printf("🔧 SMTP relay: %s:%d | From: %s | Timeout: %v", cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPTimeout)
	log.Printf("🔧 Template root: %s | ICS root: %s", cfg.TemplateDir, cfg.ICSDir)
	log.Printf("🔧 QR bill generator: %s | Format: %s | Timeout: %v", cfg.QRBillURL, cfg.QRBillFormat, cfg.QRBillTimeout)

	mailer := service.NewMailerService(
		cfg,
		template.NewStore(cfg.TemplateDir),
		template.NewRenderer(),
		ics.NewResolver(cfg.ICSDir),
		qrbill.NewClient(cfg),
		qrbill.NewConverter(cfg.QRBillFormat),
		email.NewSender(cfg),
	)
	handler := transport.NewHandler(mailer)
	log.Println("✅ [SERVICE] MailerService & Handler initialized")

	app := fiber.New(fiber.Config{
		AppName: "mail-sender",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))

	mail := app.Group("/mail-sender")
	mail.Get("/", handler.Usage)
	mail.Post("/send", handler.Send)
	log.Println("✅ [ROUTES] Registered /mail-sender/, /mail-sender/send")

	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "mail-sender",
			"uptime":    uptime.String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 mail-sender starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}
