// The doorlist kiosk runs an unattended check-in station on a terminal.
// Scanner hardware in keyboard-wedge mode types decoded QR payloads followed
// by a newline, so stdin lines are scan frames. A few slash-commands cover
// staff interventions; everything else goes through the same orchestrator
// the server uses.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"doorlist/internal/admission"
	"doorlist/internal/checkin/service"
	eventStore "doorlist/internal/event/store"
	"doorlist/internal/gallery"
	guestStore "doorlist/internal/guest/store"
	"doorlist/internal/kiosk"
	"doorlist/internal/platform/config"
	"doorlist/internal/platform/database"
	"doorlist/internal/platform/logger"
	"doorlist/internal/platform/mailer"
	"doorlist/internal/resolver"
	"doorlist/internal/scan"
)

func main() {
	if err := run(); err != nil {
		slog.Error("kiosk exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.LogDebug {
		level = slog.LevelDebug
	}
	log := logger.New(level)
	slog.SetDefault(log)

	db, err := database.Open(database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return err
	}

	var (
		guests  service.GuestWriter
		guestsR resolver.GuestDirectory
		events  resolver.EventDirectory
	)
	if db != nil {
		defer db.Close() //nolint:errcheck
		pg := guestStore.NewPostgres(db)
		guests, guestsR, events = pg, pg, eventStore.NewPostgres(db)
	} else {
		mg := guestStore.New()
		guests, guestsR, events = mg, mg, eventStore.New()
		log.Warn("DATABASE_URL not set, using empty in-memory stores")
	}

	res := resolver.New(guestsR, events, resolver.WithLogger(log))
	svc, err := service.New(res, events, guests,
		admission.Policy{EarlyWindow: cfg.AdmissionEarlyWindow, LateWindow: cfg.AdmissionLateWindow},
		service.WithLogger(log),
		service.WithGallery(gallery.NewIssuer(cfg.GallerySigningKey, cfg.GalleryBaseURL, cfg.GalleryTokenTTL)),
		service.WithMailer(mailer.NewDevMailer(log)),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop, err := kiosk.New(svc.Reset, cfg.KioskCountdownSteps, cfg.KioskStepInterval,
		kiosk.WithLogger(log),
		kiosk.WithOnTick(func(remaining int) {
			fmt.Printf("\rresetting in %d...  ", remaining)
		}),
	)
	if err != nil {
		return err
	}

	station := &station{
		svc:     svc,
		loop:    loop,
		guard:   kiosk.NewGuard(cfg.KioskExitPINHash),
		eventID: cfg.KioskEventID,
		exit:    stop,
	}

	controller, err := scan.New(station.handleScan, cfg.ScanDisplayDuration, cfg.ScanQueueSize,
		scan.WithLogger(log),
	)
	if err != nil {
		return err
	}
	if err := controller.Start(ctx); err != nil {
		return err
	}
	defer controller.Stop() //nolint:errcheck

	fmt.Println("doorlist kiosk ready. scan a code, or type /name <guest>, /select <id>, /confirm, /reset, /exit <pin>.")

	lines := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nkiosk stopped")
			return nil
		default:
		}
		if !lines.Scan() {
			return lines.Err()
		}
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			station.handleCommand(ctx, line)
			continue
		}
		if !controller.Offer(line) {
			log.Debug("frame dropped", "len", len(line))
		}
	}
}

type station struct {
	svc   *service.Service
	loop  *kiosk.Loop
	guard *kiosk.Guard
	exit  context.CancelFunc

	// eventID is read by the scan worker and rewritten when an event link is
	// scanned, hence the guard.
	mu      sync.Mutex
	eventID string
}

func (st *station) event() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.eventID
}

func (st *station) setEvent(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.eventID = id
}

func (st *station) handleScan(ctx context.Context, raw string) {
	st.loop.Cancel()
	attempt, err := st.svc.SubmitScan(ctx, st.event(), raw)
	st.render(ctx, attempt, err)
}

func (st *station) handleCommand(ctx context.Context, line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/name":
		st.loop.Cancel()
		var (
			attempt service.Attempt
			err     error
		)
		if eventID := st.event(); eventID != "" {
			attempt, err = st.svc.SubmitName(ctx, eventID, arg)
		} else {
			attempt, err = st.svc.SubmitNameAnyEvent(ctx, arg)
		}
		st.render(ctx, attempt, err)
	case "/select":
		attempt, err := st.svc.Select(ctx, arg)
		st.render(ctx, attempt, err)
	case "/confirm":
		attempt, err := st.svc.Confirm(ctx)
		st.render(ctx, attempt, err)
	case "/reset":
		st.loop.Cancel()
		if err := st.svc.Reset(); err != nil {
			fmt.Println("!", err)
			return
		}
		fmt.Println("ready")
	case "/exit":
		if !st.guard.Verify(arg) {
			fmt.Println("! wrong PIN")
			return
		}
		st.exit()
	default:
		fmt.Println("! unknown command", cmd)
	}
}

func (st *station) render(ctx context.Context, a service.Attempt, err error) {
	if err != nil {
		fmt.Println("!", err)
		return
	}

	switch a.State {
	case service.StateConfirmed:
		if a.AlreadyCheckedIn {
			fmt.Printf("✔ %s is already checked in", a.Guest.Name)
		} else {
			fmt.Printf("✔ welcome, %s!", a.Guest.Name)
		}
		if a.Guest.Table != "" {
			fmt.Printf("  table %s", a.Guest.Table)
		}
		fmt.Println()
		st.loop.Arm(ctx)
	case service.StateFound:
		switch {
		case a.DeniedReason != "":
			fmt.Println("✖", a.DeniedReason)
		case len(a.Candidates) > 0:
			fmt.Println("several guests match, /select one:")
			for _, m := range a.Candidates {
				fmt.Printf("  %-10s %-24s %s\n", m.Guest.ID, m.Guest.Name, m.Event.Name)
			}
		default:
			fmt.Printf("found %s (table %s), /confirm to check in\n", a.Guest.Name, a.Guest.Table)
		}
	case service.StateNotFound:
		fmt.Println("✖ no guest found")
	case service.StateIdle:
		if a.RoutedEventID != "" {
			st.setEvent(a.RoutedEventID)
			fmt.Println("station now serving event", a.RoutedEventID)
		}
	}
}
