package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eykd/typedid-go/internal/ledger"
	"github.com/eykd/typedid-go/internal/logging"
	"github.com/eykd/typedid-go/pkg/config"
	"github.com/eykd/typedid-go/pkg/generator"
	"github.com/eykd/typedid-go/pkg/typedid"
)

// Env holds what commands take from the process: the working directory
// and the random source.
type Env struct {
	// Getwd returns the directory commands resolve the project from.
	Getwd func() (string, error)
	// Rand overrides the random source of every generator when set.
	Rand io.Reader
}

// DefaultEnv returns an Env backed by the operating system.
func DefaultEnv() *Env {
	return &Env{Getwd: os.Getwd}
}

// loaded is a resolved configuration and the file it came from.
type loaded struct {
	cfg      *config.Config
	registry *typedid.Registry
	// path is empty for the built-in default.
	path string
}

// generatorOptions returns the options applied to every strategy.
func (e *Env) generatorOptions() []generator.Option {
	if e.Rand == nil {
		return nil
	}
	return []generator.Option{generator.WithReader(e.Rand)}
}

// projectRoot finds the enclosing .tid project.
func (e *Env) projectRoot() (string, error) {
	cwd, err := e.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return ledger.FindRoot(cwd)
}

// configFile picks the config file: --config, then typedid.yaml at the
// project root, then typedid.yaml in the working directory. It returns ""
// when none exists.
func (e *Env) configFile() (string, error) {
	if p := GetConfigPath(); p != "" {
		return p, nil
	}
	cwd, err := e.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	candidates := []string{filepath.Join(cwd, config.FileName)}
	if root, err := ledger.FindRoot(cwd); err == nil {
		candidates = append([]string{filepath.Join(root, config.FileName)}, candidates...)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", &ContextError{Op: "checking config", Path: c, Err: err}
		}
	}
	return "", nil
}

// load resolves and validates the configuration and builds its registry.
func (e *Env) load(ctx context.Context) (*loaded, error) {
	log := logging.Get(ctx)

	path, err := e.configFile()
	if err != nil {
		return nil, err
	}
	cfg := config.Default()
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
		log.Debug("Loaded config", zap.String("path", path), zap.Strings("kinds", cfg.KindNames()))
	} else {
		log.Debug("No config file found, using defaults")
	}

	reg, err := cfg.Registry(e.generatorOptions()...)
	if err != nil {
		return nil, &ContextError{Op: "building generators", Path: path, Err: err}
	}
	return &loaded{cfg: cfg, registry: reg, path: path}, nil
}
