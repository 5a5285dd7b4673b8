// cmd/clinicdash/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/halicare/clinicdash/internal/auth"
	"github.com/halicare/clinicdash/internal/clinic"
	"github.com/halicare/clinicdash/internal/config"
	"github.com/halicare/clinicdash/internal/credstore"
	"github.com/halicare/clinicdash/internal/dashboard"
	"github.com/halicare/clinicdash/internal/httpclient"
	"github.com/halicare/clinicdash/internal/listctl"
	"github.com/halicare/clinicdash/internal/repo"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
		phone      = flag.String("phone", "", "Phone number to log in with")
		password   = flag.String("password", "", "Password (or set HALICARE_PASSWORD)")
		userID     = flag.String("user", "", "Account id when reusing a stored token")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	creds := credstore.Open(cfg.Credentials.Filename, cfg.Credentials.TokenKey)
	defer creds.Close()
	if cfg.API.AccessToken != "" {
		creds.Set(cfg.API.AccessToken)
	}

	janitor, err := credstore.StartJanitor(creds, cfg.Credentials.SweepInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start credential janitor")
	}
	defer func() {
		if err := janitor.Stop(); err != nil {
			log.Warn().Err(err).Msg("Credential janitor shutdown failed")
		}
	}()

	client, err := httpclient.New(cfg.API.BaseURL, creds,
		httpclient.WithTimeout(cfg.API.Timeout),
		httpclient.WithRateLimit(cfg.API.RequestsPerSecond),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build API client")
	}
	repos := repo.New(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, creds, client, repos, *phone, *password, *userID); err != nil {
		log.Fatal().Err(err).Msg("Session failed")
	}
}

func run(ctx context.Context, cfg *config.Config, creds *credstore.Store, client *httpclient.Client, repos *repo.Repositories, phone, password, userID string) error {
	flow := auth.New(client, creds)

	if phone != "" {
		if password == "" {
			password = os.Getenv("HALICARE_PASSWORD")
		}
		session, err := flow.Login(ctx, phone, password)
		if err != nil {
			return err
		}
		userID = session.UserID
	} else {
		if _, ok := creds.Get(); !ok {
			return fmt.Errorf("no stored credential; log in with -phone and -password")
		}
		if userID == "" {
			return fmt.Errorf("stored-token mode requires -user")
		}
	}

	// Routing depends on the clinic lookup; nothing renders until it
	// settles.
	resolver := clinic.NewResolver(repos.Centers)
	resolution, err := resolver.Resolve(ctx, userID)
	if err != nil {
		return err
	}
	if resolution.Route() != clinic.RouteDashboard {
		fmt.Printf("No clinic registered for this account; continue at %s\n", resolution.Route().Path())
		return nil
	}

	loader := dashboard.NewLoader(repos.Users, repos.Appointments, repos.Services)
	data, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dashboard data: %w", err)
	}

	printDashboard(data)
	printAppointments(data, cfg.Pages.PageSize)
	return nil
}

func printDashboard(data dashboard.Data) {
	metrics := data.Metrics()

	fmt.Printf("Total Patients: %d\n\n", metrics.TotalPatients)

	fmt.Println("Appointments by status:")
	for _, status := range metrics.StatusBreakdown {
		fmt.Printf("  %-12s %d\n", status.Status, status.Count)
	}

	fmt.Println("\nService usage:")
	for _, usage := range metrics.ServiceUsage {
		fmt.Printf("  %-24s %d\n", usage.ServiceName, usage.Count)
	}

	fmt.Println("\nNumber of patients by month:")
	for _, month := range metrics.MonthlySeries {
		fmt.Printf("  %-10s %d\n", month.Label(), month.Patients)
	}
	fmt.Println()
}

func printAppointments(data dashboard.Data, pageSize int) {
	list := listctl.NewAppointmentList(pageSize)
	list.SetItems(listctl.BuildAppointmentRows(data.Appointments, data.Users, data.Services))

	if message, empty := list.EmptyState(); empty {
		fmt.Println(message)
		return
	}

	fmt.Printf("Appointments (page %d of %d):\n", list.Page(), list.PageCount())
	for _, row := range list.VisibleItems() {
		fmt.Printf("  %-20s %-20s %-12s %s\n",
			row.PatientName,
			row.ServiceName,
			row.Appointment.BookingStatus,
			row.Appointment.Date.Format("2006-01-02 15:04"),
		)
	}
}
