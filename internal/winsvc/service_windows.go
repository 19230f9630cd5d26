//go:build windows

package winsvc

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"
	"golang.org/x/sys/windows/svc/mgr"
)

// ServiceConfig describes a service registration with the Service
// Control Manager. Args are passed to the executable on service start.
type ServiceConfig struct {
	Name        string
	DisplayName string
	Description string
	Args        []string
}

// eventLogWriter adapts an eventlog.Log so standard log.Printf calls
// land in the Windows Event Log as informational messages.
type eventLogWriter struct {
	elog *eventlog.Log
}

func (w *eventLogWriter) Write(p []byte) (int, error) {
	if err := w.elog.Info(1, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetupEventLog opens the named event log source and redirects the
// standard logger to it. Event log entries carry their own timestamps,
// so log flags are cleared.
func SetupEventLog(name string) {
	elog, err := eventlog.Open(name)
	if err != nil {
		return // keep default stderr logging
	}
	log.SetOutput(&eventLogWriter{elog: elog})
	log.SetFlags(0)
}

// IsWindowsService reports whether the process was started by the SCM.
func IsWindowsService() bool {
	ok, err := svc.IsWindowsService()
	if err != nil {
		return false
	}
	return ok
}

// handler bridges the SCM control requests to a cancellable run
// function.
type handler struct {
	name string
	run  func(ctx context.Context) error
}

func (h *handler) Execute(_ []string, req <-chan svc.ChangeRequest, status chan<- svc.Status) (bool, uint32) {
	const accepted = svc.AcceptStop | svc.AcceptShutdown
	status <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- h.run(ctx)
	}()

	status <- svc.Status{State: svc.Running, Accepts: accepted}

	for {
		select {
		case err := <-done:
			status <- svc.Status{State: svc.StopPending}
			if err != nil {
				log.Printf("Service %s stopped with error: %v", h.name, err)
				return false, 1
			}
			return false, 0

		case cr := <-req:
			switch cr.Cmd {
			case svc.Interrogate:
				status <- cr.CurrentStatus
			case svc.Stop, svc.Shutdown:
				status <- svc.Status{State: svc.StopPending}
				cancel()
				select {
				case <-done:
				case <-time.After(30 * time.Second):
					log.Printf("Service %s: timed out waiting for graceful shutdown", h.name)
				}
				return false, 0
			}
		}
	}
}

// RunService runs as the named Windows service, blocking until the SCM
// requests a stop. The run function receives a context cancelled on
// stop.
func RunService(name string, run func(ctx context.Context) error) error {
	return svc.Run(name, &handler{name: name, run: run})
}

// Install registers the service described by cfg with the SCM, points
// it at the current executable, and creates an event log source.
func Install(cfg ServiceConfig) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("determine executable path: %w", err)
	}

	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	if s, err := m.OpenService(cfg.Name); err == nil {
		s.Close()
		return fmt.Errorf("service %s already exists", cfg.Name)
	}

	s, err := m.CreateService(cfg.Name, exePath, mgr.Config{
		DisplayName: cfg.DisplayName,
		Description: cfg.Description,
		StartType:   mgr.StartAutomatic,
	}, cfg.Args...)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	defer s.Close()

	// Best-effort: restart on the first two failures.
	_ = s.SetRecoveryActions([]mgr.RecoveryAction{
		{Type: mgr.ServiceRestart, Delay: 10 * time.Second},
		{Type: mgr.ServiceRestart, Delay: 30 * time.Second},
		{Type: mgr.NoAction},
	}, 86400)

	if err := eventlog.InstallAsEventCreate(cfg.Name, eventlog.Error|eventlog.Warning|eventlog.Info); err != nil {
		// Non-fatal: the service itself is installed.
		log.Printf("Warning: could not install event log source: %v", err)
	}

	return nil
}

// Uninstall stops and removes the named service and its event log
// source.
func Uninstall(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	defer s.Close()

	if status, err := s.Query(); err == nil && status.State != svc.Stopped {
		_, _ = s.Control(svc.Stop)
		waitForState(s, svc.Stopped)
	}

	if err := s.Delete(); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	_ = eventlog.Remove(name)

	return nil
}

// Start asks the SCM to start the named service.
func Start(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	defer s.Close()

	if err := s.Start(); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	return nil
}

// Stop asks the SCM to stop the named service and waits briefly for it
// to reach the stopped state.
func Stop(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	defer s.Close()

	if _, err := s.Control(svc.Stop); err != nil {
		return fmt.Errorf("stop service: %w", err)
	}
	waitForState(s, svc.Stopped)
	return nil
}

func waitForState(s *mgr.Service, want svc.State) {
	for range 10 {
		time.Sleep(500 * time.Millisecond)
		status, err := s.Query()
		if err != nil || status.State == want {
			return
		}
	}
}
