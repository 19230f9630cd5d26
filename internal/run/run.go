// Package run drives the one-shot readiness pipeline: collect facts,
// bridge to the graphics diagnostic, evaluate the checks, build the
// report, print it, and optionally submit it.
package run

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/go-tangra/go-tangra-readiness/internal/checks"
	"github.com/go-tangra/go-tangra-readiness/internal/console"
	"github.com/go-tangra/go-tangra-readiness/internal/dxdiag"
	"github.com/go-tangra/go-tangra-readiness/internal/facts"
	"github.com/go-tangra/go-tangra-readiness/internal/report"
	"github.com/go-tangra/go-tangra-readiness/internal/sender"
)

// Options configures a readiness run.
type Options struct {
	Provider     facts.Provider
	Bridge       *dxdiag.Bridge
	DepthProfile checks.DepthProfile
	Out          io.Writer
	NoColor      bool

	Submit       bool
	Endpoint     string
	ClientSecret string
}

// Check executes one readiness run. A collection or bridge failure is
// fatal and returns before any report exists; a submission failure is
// logged only, since the printed verdicts remain the source of truth.
func Check(ctx context.Context, opts Options) (*report.Report, error) {
	f, err := facts.Collect(opts.Provider)
	if err != nil {
		return nil, fmt.Errorf("collect facts: %w", err)
	}

	diag, err := opts.Bridge.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphics diagnostic: %w", err)
	}

	verdicts := checks.Evaluate(f, diag, opts.DepthProfile)
	rep := report.Build(f, diag, verdicts)

	console.New(opts.Out, opts.NoColor).PrintReport(rep)

	if opts.Submit {
		id, err := sender.Send(ctx, opts.Endpoint, opts.ClientSecret, rep)
		if err != nil {
			log.Printf("warning: submit report: %v", err)
		} else if id != 0 {
			log.Printf("Report submitted to %s (record %d)", opts.Endpoint, id)
		} else {
			log.Printf("Report submitted to %s", opts.Endpoint)
		}
	}

	return rep, nil
}
