package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/foldernote/pkg/marker"
	"github.com/grovetools/foldernote/pkg/models"
	"github.com/grovetools/foldernote/pkg/resolver"
	"github.com/grovetools/foldernote/pkg/search"
	"github.com/grovetools/foldernote/pkg/vault"
)

// Service is the core folder-note service
type Service struct {
	Config *Config
	Logger *logrus.Logger
	Index  *search.Index

	vault *vault.Vault
}

// Config holds service configuration
type Config struct {
	VaultDir   string
	DataDir    string
	Editor     string
	Resolution *models.Config
}

// New creates a new folder-note service
func New(config *Config, logger *logrus.Logger) (*Service, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
	}

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	index, err := search.NewIndex(filepath.Join(config.DataDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Service{
		Config: config,
		Logger: logger,
		Index:  index,
	}, nil
}

// Vault returns the loaded vault snapshot, loading it on first use.
func (s *Service) Vault() (*vault.Vault, error) {
	if s.vault == nil {
		v, err := vault.Load(s.Config.VaultDir)
		if err != nil {
			return nil, fmt.Errorf("load vault: %w", err)
		}
		s.vault = v
	}
	return s.vault, nil
}

// Resolve returns the representative note for a folder path, nil when the
// folder is unknown or resolution yields nothing.
func (s *Service) Resolve(folderPath string) (*models.Note, error) {
	v, err := s.Vault()
	if err != nil {
		return nil, err
	}
	folder, ok := v.Folder(folderPath)
	if !ok {
		s.Logger.Debugf("resolve: unknown folder %q", folderPath)
		return nil, nil
	}
	return resolver.Resolve(folder, s.Config.Resolution), nil
}

// SetMarker places the explicit index marker on a note.
func (s *Service) SetMarker(notePath string) error {
	v, err := s.Vault()
	if err != nil {
		return err
	}
	return marker.Set(v, notePath)
}

// UnsetMarker removes the explicit index marker from a note.
func (s *Service) UnsetMarker(notePath string) error {
	v, err := s.Vault()
	if err != nil {
		return err
	}
	return marker.Unset(v, notePath)
}

// HasMarker reports whether a note carries the explicit index marker.
func (s *Service) HasMarker(notePath string) (bool, error) {
	v, err := s.Vault()
	if err != nil {
		return false, err
	}
	return marker.Has(v, notePath)
}

// Reindex rebuilds the search index from the current vault state.
func (s *Service) Reindex() (int, error) {
	v, err := s.Vault()
	if err != nil {
		return 0, err
	}
	return s.Index.Reindex(v)
}

// OpenInEditor opens a note in the configured editor
func (s *Service) OpenInEditor(notePath string) error {
	v, err := s.Vault()
	if err != nil {
		return err
	}

	editor := s.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}

	cmd := exec.Command(editor, v.AbsPath(notePath))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// Close closes the service
func (s *Service) Close() error {
	if s.Index != nil {
		return s.Index.Close()
	}
	return nil
}
