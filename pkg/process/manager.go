// Package process provides process lifecycle utilities
package process

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gamekeeper/gamekeeper/pkg/logger"
)

// Manager handles OS signals and shutdown handlers for long-running
// commands such as watch
type Manager struct {
	logger           logger.Logger
	shutdownHandlers []func()
	wg               sync.WaitGroup
	mu               sync.Mutex
	running          bool
}

// NewManager creates a new process manager
func NewManager(log logger.Logger) *Manager {
	return &Manager{
		logger:           log,
		shutdownHandlers: make([]func(), 0),
		running:          false,
	}
}

// RegisterShutdownHandler adds a shutdown handler
func (m *Manager) RegisterShutdownHandler(handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shutdownHandlers = append(m.shutdownHandlers, handler)
}

// Start starts the process manager with the given context.
// The context controls the lifetime of the manager.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		select {
		case <-ctx.Done():
			m.handleShutdown()
		case sig := <-sigChan:
			m.logger.Info("Received signal", logger.WithField("signal", sig))
			m.handleShutdown()
		}
	}()
}

// Stop stops the process manager
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	m.wg.Wait()
}

// IsRunning checks if the process manager is running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) handleShutdown() {
	m.logger.Info("Initiating graceful shutdown...")

	// Call shutdown handlers in reverse order
	m.mu.Lock()
	handlers := make([]func(), len(m.shutdownHandlers))
	copy(handlers, m.shutdownHandlers)
	m.running = false
	m.mu.Unlock()

	for i := len(handlers) - 1; i >= 0; i-- {
		handlers[i]()
	}
}
