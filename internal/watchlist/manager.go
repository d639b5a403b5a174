package watchlist

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

// ErrSavingDisabled is returned by Add and Remove after the saved list
// failed to load, so a broken file is never overwritten.
var ErrSavingDisabled = errors.New("saving and unsaving is disabled")

// Manager holds the saved-symbol list with concurrency safety.
type Manager struct {
	mu      sync.Mutex
	symbols []string
	store   *Store
	loadErr error
}

// NewManager creates a Manager, loading the saved list from store. If
// loading fails the manager starts empty and read-only; LoadError reports why.
func NewManager(store *Store) *Manager {
	m := &Manager{store: store}
	symbols, err := store.Read()
	if err != nil {
		log.Printf("[WARN] saved stocks could not be loaded, saving disabled: %v", err)
		m.loadErr = err
		m.symbols = []string{}
		return m
	}
	m.symbols = normalizeAll(symbols)
	return m
}

// LoadError returns the error that disabled saving, if any.
func (m *Manager) LoadError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// List returns a copy of the saved symbols in insertion order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.symbols))
	copy(out, m.symbols)
	return out
}

// Contains reports whether symbol is saved.
func (m *Manager) Contains(symbol string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return indexOf(m.symbols, normalize(symbol)) >= 0
}

// Add saves symbol. Adding a saved symbol is a no-op.
func (m *Manager) Add(symbol string) error {
	symbol = normalize(symbol)
	if symbol == "" {
		return errors.New("symbol is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return ErrSavingDisabled
	}
	if indexOf(m.symbols, symbol) >= 0 {
		return nil
	}
	next := append(append([]string{}, m.symbols...), symbol)
	if err := m.store.Write(next); err != nil {
		return fmt.Errorf("save %s: %w", symbol, err)
	}
	m.symbols = next
	log.Printf("[INFO] saved %s", symbol)
	return nil
}

// Remove unsaves symbol. Removing an unknown symbol is a no-op.
func (m *Manager) Remove(symbol string) error {
	symbol = normalize(symbol)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return ErrSavingDisabled
	}
	i := indexOf(m.symbols, symbol)
	if i < 0 {
		return nil
	}
	next := append(append([]string{}, m.symbols[:i]...), m.symbols[i+1:]...)
	if err := m.store.Write(next); err != nil {
		return fmt.Errorf("unsave %s: %w", symbol, err)
	}
	m.symbols = next
	log.Printf("[INFO] unsaved %s", symbol)
	return nil
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// normalizeAll upper-cases symbols and drops blanks and repeats.
func normalizeAll(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = normalize(s)
		if s == "" || indexOf(out, s) >= 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func indexOf(symbols []string, symbol string) int {
	for i, s := range symbols {
		if s == symbol {
			return i
		}
	}
	return -1
}
