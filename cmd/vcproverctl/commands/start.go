package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aries-go/vcprover/internal/api"
	apiauth "github.com/aries-go/vcprover/internal/api/auth"
	"github.com/aries-go/vcprover/internal/config"
	"github.com/aries-go/vcprover/internal/logger"
	"github.com/aries-go/vcprover/internal/telemetry"
	"github.com/aries-go/vcprover/pkg/anoncreds"
	anoncredsfake "github.com/aries-go/vcprover/pkg/anoncreds/fake"
	"github.com/aries-go/vcprover/pkg/ledgerrpc"
	"github.com/aries-go/vcprover/pkg/messaging/agencyclient"
	"github.com/aries-go/vcprover/pkg/metrics"
	"github.com/aries-go/vcprover/pkg/prover"
	"github.com/aries-go/vcprover/pkg/revocation"
	"github.com/aries-go/vcprover/pkg/walletstore"
	walletpostgres "github.com/aries-go/vcprover/pkg/walletstore/postgres"

	// Import the Prometheus implementations to register their init() constructors.
	_ "github.com/aries-go/vcprover/pkg/metrics/prometheus"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the vcprover agent",
	Long: `Start the vcprover agent: loads configuration, wires the ledger,
crypto, transport, and (optionally) history-store collaborators, and serves
the control-plane API until interrupted.

Examples:
  # Start with the default config file
  vcproverctl start

  # Start with a custom config file
  vcproverctl start --config /etc/vcprover/config.yaml

  # Override log level via environment
  VCPROVER_LOGGING_LEVEL=DEBUG vcproverctl start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "vcprover",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("metrics enabled", "port", cfg.Metrics.Port)
	}

	ledgerClient, err := ledgerrpc.Dial(ledgerrpc.Config{
		Endpoint: cfg.Ledger.Endpoint,
		Insecure: cfg.Ledger.Insecure,
		Timeout:  cfg.Ledger.Timeout,
	})
	if err != nil {
		return fmt.Errorf("failed to dial ledger: %w", err)
	}
	defer func() { _ = ledgerClient.Close() }()

	// Crypto is the out-of-scope wallet/crypto collaborator: the fake engine
	// stands in for a real anoncreds/libindy binding, which this tree never
	// wires directly (see DESIGN.md).
	var crypto anoncreds.Engine = &anoncredsfake.Engine{}

	cache := revocation.NewMemoryCache()
	builder := revocation.NewBuilder(cache, ledgerClient, crypto)
	builder.Recorder = metrics.NewRevocationMetrics()

	transport := agencyclient.New(cfg.Agency.BaseURL)
	if cfg.Agency.Token != "" {
		transport = transport.WithToken(cfg.Agency.Token)
	}

	svc := &prover.Service{
		Registry:        prover.NewRegistry(),
		Builder:         builder,
		Ledger:          ledgerClient,
		Crypto:          crypto,
		Transport:       transport,
		LinkSecretAlias: cfg.LinkSecretAlias,
		Recorder:        metrics.NewProverMetrics(),
	}

	var history walletstore.Store
	if cfg.WalletStore.Enabled {
		store, err := walletpostgres.New(ctx, walletpostgres.Config{
			Host:     cfg.WalletStore.Host,
			Port:     cfg.WalletStore.Port,
			Database: cfg.WalletStore.Database,
			User:     cfg.WalletStore.User,
			Password: cfg.WalletStore.Password,
			SSLMode:  cfg.WalletStore.SSLMode,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to wallet store: %w", err)
		}
		defer func() { _ = store.Close() }()
		history = store
		logger.Info("presentation history recording enabled", "host", cfg.WalletStore.Host, "database", cfg.WalletStore.Database)
	}

	jwtService, err := apiauth.NewJWTService(apiauth.JWTConfig{
		Secret: cfg.ControlPlane.JWTSecret,
		Issuer: cfg.ControlPlane.JWTIssuer,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	conns := api.NewConnectionRegistry()
	server := api.NewServer(cfg.ControlPlane, svc, conns, jwtService, history)

	logger.Info("vcprover agent starting", "control_plane_port", cfg.ControlPlane.Port, "ledger_endpoint", cfg.Ledger.Endpoint)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Error("control-plane API stopped with error", "error", err)
		return err
	}

	logger.Info("vcprover agent stopped")
	return nil
}
