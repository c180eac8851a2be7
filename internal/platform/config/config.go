package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures everything the binaries read from the environment.
// Admission bounds, scan timing, and kiosk behavior are product policy and
// deliberately not hardcoded.
type Config struct {
	Addr        string `env:"DOORLIST_ADDR" envDefault:":8080"`
	Environment string `env:"DOORLIST_ENV" envDefault:"development"`
	LogDebug    bool   `env:"LOG_DEBUG" envDefault:"false"`

	// DatabaseURL is optional; without it the stores run in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	// NATSURL is optional; without it check-in events are not published.
	NATSURL string `env:"NATS_URL"`

	// Admission window policy (per-event overrides still win).
	AdmissionEarlyWindow time.Duration `env:"ADMISSION_EARLY_WINDOW" envDefault:"2h"`
	AdmissionLateWindow  time.Duration `env:"ADMISSION_LATE_WINDOW" envDefault:"6h"`

	// Continuous scanning.
	ScanDisplayDuration time.Duration `env:"SCAN_DISPLAY_DURATION" envDefault:"4s"`
	ScanQueueSize       int           `env:"SCAN_QUEUE_SIZE" envDefault:"8"`

	// Kiosk mode. KioskEventID scopes an unattended station to one event;
	// leave it empty for a whole-venue station.
	KioskEventID        string        `env:"KIOSK_EVENT_ID"`
	KioskCountdownSteps int           `env:"KIOSK_COUNTDOWN_STEPS" envDefault:"10"`
	KioskStepInterval   time.Duration `env:"KIOSK_STEP_INTERVAL" envDefault:"1s"`
	KioskExitPINHash    string        `env:"KIOSK_EXIT_PIN_HASH"`

	// Gallery follow-up links.
	GallerySigningKey string        `env:"GALLERY_SIGNING_KEY" envDefault:"dev-secret-change-in-production"`
	GalleryBaseURL    string        `env:"GALLERY_BASE_URL" envDefault:"https://doorlist.app"`
	GalleryTokenTTL   time.Duration `env:"GALLERY_TOKEN_TTL" envDefault:"720h"`

	// Outbound mail.
	MailerSendAPIKey string `env:"MAILERSEND_API_KEY"`
	MailFromName     string `env:"MAIL_FROM_NAME" envDefault:"Doorlist"`
	MailFromEmail    string `env:"MAIL_FROM_EMAIL"`
}

// FromEnv parses configuration from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config from env: %w", err)
	}
	return cfg, nil
}
