package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"

	"github.com/go-tangra/go-tangra-readiness/internal/report"
)

// Notifier republishes stored reports to a NATS subject so downstream
// consumers (dashboards, fleet tooling) see submissions as they land.
type Notifier struct {
	nc      *nats.Conn
	subject string
}

// NewNotifier connects to the NATS server at url. The connection is
// made once at startup; a failure here is fatal so misconfiguration
// surfaces immediately.
func NewNotifier(url, subject string) (*Notifier, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return &Notifier{nc: nc, subject: subject}, nil
}

// Publish sends the report to the configured subject. Publish failures
// are logged, never fatal: storage already succeeded and the notifier
// is best-effort.
func (n *Notifier) Publish(rep *report.Report) {
	payload, err := json.Marshal(rep)
	if err != nil {
		log.Printf("warning: marshal report for NATS: %v", err)
		return
	}
	if err := n.nc.Publish(n.subject, payload); err != nil {
		log.Printf("warning: publish report to NATS subject %s: %v", n.subject, err)
	}
}

// Close drains and closes the NATS connection.
func (n *Notifier) Close() {
	if err := n.nc.Drain(); err != nil {
		log.Printf("warning: drain NATS connection: %v", err)
	}
}
