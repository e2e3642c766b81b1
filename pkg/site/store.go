/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package site

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/NVIDIA/cookbook/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	stateFileName = "state.yaml"
	configDirName = "config"
)

// State is the persisted shape of a site: which extensions are enabled
// and which actions have run. Config objects live as individual files
// under the config directory.
type State struct {
	Extensions []string          `yaml:"extensions,omitempty"`
	Actions    map[string]string `yaml:"actions,omitempty"`
}

// ActionFunc handles one named action.
type ActionFunc func(ctx context.Context, args map[string]any) error

// Store is a directory-backed Target. Every mutation is written
// atomically, so a killed process never leaves a torn state file.
type Store struct {
	dir      string
	handlers map[string]ActionFunc

	mu    sync.Mutex
	state State
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithActionHandler registers a handler invoked when the named action
// runs. Actions without a handler are recorded but have no effect.
func WithActionHandler(name string, fn ActionFunc) StoreOption {
	return func(s *Store) {
		s.handlers[name] = fn
	}
}

// Open opens (creating if needed) a site directory.
func Open(dir string, opts ...StoreOption) (*Store, error) {
	if dir == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "site directory is empty")
	}
	if err := os.MkdirAll(filepath.Join(dir, configDirName), 0o755); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create site directory", err,
			map[string]any{"dir": dir})
	}

	s := &Store{
		dir:      dir,
		handlers: make(map[string]ActionFunc),
		state:    State{Actions: make(map[string]string)},
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := os.ReadFile(filepath.Join(dir, stateFileName))
	switch {
	case os.IsNotExist(err):
		// fresh site
	case err != nil:
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to read site state", err,
			map[string]any{"dir": dir})
	default:
		if err := yaml.Unmarshal(raw, &s.state); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInternal,
				"site state is corrupt", err,
				map[string]any{"dir": dir})
		}
		if s.state.Actions == nil {
			s.state.Actions = make(map[string]string)
		}
	}
	return s, nil
}

// Dir returns the site root directory.
func (s *Store) Dir() string {
	return s.dir
}

// EnableExtension records the extension as enabled.
func (s *Store) EnableExtension(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "extension name is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ext := range s.state.Extensions {
		if ext == name {
			slog.Debug("extension already enabled", "extension", name)
			return nil
		}
	}
	s.state.Extensions = append(s.state.Extensions, name)
	sort.Strings(s.state.Extensions)
	return s.writeStateLocked()
}

// ImportConfig writes the named config object under the site's config
// directory.
func (s *Store) ImportConfig(ctx context.Context, name string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "config name is empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("config name %q must not contain path separators", name))
	}
	if len(data) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("config %q has no payload", name))
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("failed to encode config %q", name), err,
			map[string]any{"config": name})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	target := filepath.Join(s.dir, configDirName, name+".yaml")
	return atomicWrite(target, out)
}

// RunAction invokes the registered handler for name, if any, and
// records the run.
func (s *Store) RunAction(ctx context.Context, name string, args map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "action name is empty")
	}

	if fn, ok := s.handlers[name]; ok {
		if err := fn(ctx, args); err != nil {
			return errors.WrapWithContext(errors.ErrCodeOperationFailed,
				fmt.Sprintf("action %q failed", name), err,
				map[string]any{"action": name})
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Actions[name] = time.Now().UTC().Format(time.RFC3339)
	return s.writeStateLocked()
}

// Extensions returns the enabled extensions, sorted.
func (s *Store) Extensions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.state.Extensions))
	copy(out, s.state.Extensions)
	return out
}

// ActionRuns returns the recorded action runs (name to RFC3339
// timestamp).
func (s *Store) ActionRuns() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.state.Actions))
	for k, v := range s.state.Actions {
		out[k] = v
	}
	return out
}

// ConfigNames lists the config objects present, sorted.
func (s *Store) ConfigNames() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, configDirName))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to read site config directory", err,
			map[string]any{"dir": s.dir})
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// ReadConfig returns the payload of one config object.
func (s *Store) ReadConfig(name string) (map[string]any, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, configDirName, name+".yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("config %q not found", name),
				map[string]any{"dir": s.dir})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("failed to read config %q", name), err,
			map[string]any{"dir": s.dir})
	}
	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("config %q is corrupt", name), err,
			map[string]any{"dir": s.dir})
	}
	return data, nil
}

func (s *Store) writeStateLocked() error {
	out, err := yaml.Marshal(s.state)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode site state", err)
	}
	return atomicWrite(filepath.Join(s.dir, stateFileName), out)
}

func atomicWrite(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".site-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, "failed to write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, "failed to close temp file", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeInternal, "failed to publish file", err)
	}
	return nil
}
