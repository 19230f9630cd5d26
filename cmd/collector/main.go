package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/go-tangra/go-tangra-readiness/cmd/collector/assets"
	"github.com/go-tangra/go-tangra-readiness/internal/config"
	"github.com/go-tangra/go-tangra-readiness/internal/server"
	"github.com/go-tangra/go-tangra-readiness/internal/store"
	"github.com/go-tangra/go-tangra-readiness/internal/winsvc"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "readiness-collector",
	Short: "Readiness Collector - daemon that stores upgrade-readiness reports",
	Long: `Readiness Collector receives Windows 11 upgrade-readiness reports from
readiness agents over HTTP and stores them in a local SQLite database.

Run without a subcommand to start the daemon (equivalent to 'serve').`,
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the collector daemon",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("readiness-collector %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge reports older than the specified number of days",
	RunE:  runPurge,
}

var purgeDays int

const serviceName = "TangraReadinessCollector"

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage Windows service installation",
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install as a Windows service",
	RunE:  runServiceInstall,
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the Windows service",
	RunE:  runServiceUninstall,
}

var serviceStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the installed Windows service",
	RunE: func(*cobra.Command, []string) error {
		return winsvc.Start(serviceName)
	},
}

var serviceStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the installed Windows service",
	RunE: func(*cobra.Command, []string) error {
		return winsvc.Stop(serviceName)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/collector.yaml)")
	rootCmd.PersistentFlags().String("listen", "", "HTTP listen address (default :9650)")
	rootCmd.PersistentFlags().String("database", "", "SQLite database path (default readiness.db)")
	rootCmd.PersistentFlags().String("client-secret", "", "secret for report-submitting agents (empty = no auth)")
	rootCmd.PersistentFlags().String("api-secret", "", "secret for API clients (empty = no auth)")
	rootCmd.PersistentFlags().String("nats-url", "", "NATS server URL for report republishing (empty = disabled)")

	purgeCmd.Flags().IntVar(&purgeDays, "days", 90, "purge reports older than this many days")

	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)
	serviceCmd.AddCommand(serviceStartCmd)
	serviceCmd.AddCommand(serviceStopCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(serviceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// CLI flag overrides.
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Listen = v
	}
	if v, _ := cmd.Flags().GetString("database"); v != "" {
		cfg.DatabasePath = v
	}
	if v, _ := cmd.Flags().GetString("client-secret"); v != "" {
		cfg.ClientSecret = v
	}
	if v, _ := cmd.Flags().GetString("api-secret"); v != "" {
		cfg.ApiSecret = v
	}
	if v, _ := cmd.Flags().GetString("nats-url"); v != "" {
		cfg.NatsURL = v
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MiB
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	// Windows service mode.
	if winsvc.IsWindowsService() {
		winsvc.SetupEventLog(serviceName)
		return winsvc.RunService(serviceName, func(ctx context.Context) error {
			return server.Run(ctx, cfg, assets.OpenApiData)
		})
	}

	// Interactive mode: shut down on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, assets.OpenApiData)
}

func runServiceInstall(_ *cobra.Command, _ []string) error {
	svcArgs := []string{"serve"}
	if cfgFile != "" {
		svcArgs = append(svcArgs, "--config", cfgFile)
	}

	if err := winsvc.Install(winsvc.ServiceConfig{
		Name:        serviceName,
		DisplayName: "Tangra Readiness Collector",
		Description: "Receives Windows 11 upgrade-readiness reports from agents and stores them locally.",
		Args:        svcArgs,
	}); err != nil {
		return err
	}

	log.Printf("Service %s installed successfully", serviceName)
	return nil
}

func runServiceUninstall(_ *cobra.Command, _ []string) error {
	if err := winsvc.Uninstall(serviceName); err != nil {
		return err
	}
	log.Printf("Service %s uninstalled successfully", serviceName)
	return nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	n, err := db.Purge(context.Background(), time.Duration(purgeDays)*24*time.Hour)
	if err != nil {
		return fmt.Errorf("purge: %w", err)
	}

	fmt.Printf("Purged %d reports older than %d days\n", n, purgeDays)
	return nil
}
