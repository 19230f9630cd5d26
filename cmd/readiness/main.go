package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-readiness/internal/checks"
	"github.com/go-tangra/go-tangra-readiness/internal/dxdiag"
	"github.com/go-tangra/go-tangra-readiness/internal/facts"
	"github.com/go-tangra/go-tangra-readiness/internal/run"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var (
	dumpTimeout  time.Duration
	pollInterval time.Duration
	workDir      string
	depthProfile string
	noColor      bool
	submit       bool
	endpoint     string
	clientSecret string
)

var rootCmd = &cobra.Command{
	Use:   "readiness",
	Short: "Readiness - checks this machine against the Windows 11 upgrade requirements",
	Long: `Readiness inspects the local hardware and firmware state, waits for a
graphics diagnostic dump, and reports whether the machine satisfies the
published Windows 11 upgrade-eligibility criteria.

Run without a subcommand to perform the check (equivalent to 'check').`,
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate the eight upgrade-eligibility checks",
	RunE:  runCheck,
}

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Collect hardware and firmware facts and dump them as JSON",
	RunE:  runFacts,
}

var factsOutput string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("readiness %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&dumpTimeout, "dump-timeout", 120*time.Second, "ceiling on waiting for the graphics diagnostic dump")
	rootCmd.PersistentFlags().DurationVar(&pollInterval, "poll-interval", time.Second, "interval between dump file polls")
	rootCmd.PersistentFlags().StringVar(&workDir, "workdir", defaultWorkDir(), "working directory for the diagnostic dump")
	rootCmd.PersistentFlags().StringVar(&depthProfile, "depth-profile", string(checks.DepthProfileStrict), "display bit-depth policy (strict or legacy)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&submit, "submit", false, "submit the report to the collector after printing")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:9650/v1/reports", "collector report endpoint")
	rootCmd.PersistentFlags().StringVar(&clientSecret, "client-secret", "", "X-Client-Secret for the collector (empty = no auth)")

	factsCmd.Flags().StringVarP(&factsOutput, "output", "o", "", "write JSON output to file instead of stdout")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func defaultWorkDir() string {
	return filepath.Join(os.TempDir(), "readiness-check")
}

func runCheck(cmd *cobra.Command, args []string) error {
	profile, err := checks.ParseDepthProfile(depthProfile)
	if err != nil {
		return err
	}

	if !facts.IsElevated() {
		log.Println("warning: not running elevated; TPM and Secure Boot queries may be denied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bridge := &dxdiag.Bridge{
		WorkDir:      workDir,
		PollInterval: pollInterval,
		WaitCeiling:  dumpTimeout,
	}

	_, err = run.Check(ctx, run.Options{
		Provider:     facts.NewProvider(),
		Bridge:       bridge,
		DepthProfile: profile,
		Out:          os.Stdout,
		NoColor:      noColor,
		Submit:       submit,
		Endpoint:     endpoint,
		ClientSecret: clientSecret,
	})
	return err
}

func runFacts(cmd *cobra.Command, args []string) error {
	f, err := facts.Collect(facts.NewProvider())
	if err != nil {
		// Partial facts are still worth dumping; the warning makes the
		// gap visible.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	w := os.Stdout
	if factsOutput != "" {
		out, err := os.Create(factsOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
		w = out
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode facts: %w", err)
	}

	if factsOutput != "" {
		fmt.Fprintf(os.Stderr, "facts written to %s\n", factsOutput)
	}
	return nil
}
