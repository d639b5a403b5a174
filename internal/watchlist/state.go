package watchlist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	savedStocksFilename = "saved-stocks.yaml"
	savedStocksVersion  = 1
	appDir              = "stox"
)

// ErrUnknownVersion is returned when the saved file was written by an
// incompatible version.
var ErrUnknownVersion = errors.New("unknown file version")

// savedStocks is the on-disk layout of the saved-symbol list.
type savedStocks struct {
	Version uint8    `yaml:"version"`
	Symbols []string `yaml:"symbols"`
}

// Store reads and writes the saved-symbol list under DataHome/stox.
// A disabled store reads an empty list and discards writes.
type Store struct {
	DataHome string
	Disabled bool
}

// NewStore creates a Store rooted at dataHome.
func NewStore(dataHome string, disabled bool) *Store {
	return &Store{DataHome: dataHome, Disabled: disabled}
}

// Path returns the saved-symbol file path, creating its directories.
func (s *Store) Path() (string, error) {
	if s.DataHome == "" {
		return "", errors.New("could not get data home")
	}
	if err := os.MkdirAll(s.DataHome, 0o700); err != nil {
		return "", fmt.Errorf("create data home: %w", err)
	}
	dir := filepath.Join(s.DataHome, appDir)
	if err := os.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return filepath.Join(dir, savedStocksFilename), nil
}

// Read loads the saved symbols. A missing file is created empty.
func (s *Store) Read() ([]string, error) {
	if s.Disabled {
		return []string{}, nil
	}
	path, err := s.Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.Write(nil); err != nil {
				return nil, err
			}
			return []string{}, nil
		}
		return nil, err
	}
	var saved savedStocks
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if saved.Version != savedStocksVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVersion, saved.Version)
	}
	if saved.Symbols == nil {
		saved.Symbols = []string{}
	}
	return saved.Symbols, nil
}

// Write replaces the saved symbols. The file is only readable by its owner.
func (s *Store) Write(symbols []string) error {
	if s.Disabled {
		return nil
	}
	path, err := s.Path()
	if err != nil {
		return err
	}
	if symbols == nil {
		symbols = []string{}
	}
	data, err := yaml.Marshal(savedStocks{Version: savedStocksVersion, Symbols: symbols})
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
