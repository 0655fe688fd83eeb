// Package model opens the configured prediction backend.
package model

import (
	"fmt"

	"carprice/internal/adapter"
	"carprice/internal/config"
	"carprice/internal/model/linear"
	"carprice/internal/model/remote"
)

// Backend is a loaded model that can report its name.
type Backend interface {
	adapter.Predictor
	Name() string
}

// Open loads the backend selected by cfg. It is called once at startup; the
// returned Backend is shared read-only by all requests.
func Open(cfg config.ModelConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendLinear:
		m, err := linear.Load(cfg.Artifact)
		if err != nil {
			return nil, err
		}

		return m, nil
	case config.BackendRemote:
		return remote.New(cfg.RemoteURL, cfg.GetTimeout()), nil
	default:
		return nil, fmt.Errorf("%w: got %q", config.ErrInvalidBackend, cfg.Backend)
	}
}
