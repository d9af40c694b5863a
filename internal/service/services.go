package service

import (
	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/logger"
	"github.com/xolan/chrono/internal/snapshot"
	"github.com/xolan/chrono/internal/stopwatch"
)

// Services holds all service instances used by the application
type Services struct {
	Session *SessionService
	Config  *ConfigService
	Log     *logger.Logger
}

// NewServices creates a new Services instance with default paths.
// The session is not loaded; callers decide when to read it.
func NewServices(log *logger.Logger) (*Services, error) {
	sessionPath, err := snapshot.GetSessionPath()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(sessionPath, configPath, cfg, log), nil
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(sessionPath, configPath string, cfg config.Config, log *logger.Logger, opts ...stopwatch.Option) *Services {
	if log == nil {
		log = logger.Discard()
	}
	return &Services{
		Session: NewSessionService(sessionPath, cfg, log, opts...),
		Config:  NewConfigService(configPath, cfg),
		Log:     log,
	}
}

// UpdateConfig writes cfg and applies it to the session policies.
func (s *Services) UpdateConfig(cfg config.Config) error {
	if err := s.Config.Update(cfg); err != nil {
		return err
	}
	s.Session.SetConfig(s.Config.Get())
	return nil
}

// SetLogger replaces the logger used by the services.
func (s *Services) SetLogger(log *logger.Logger) {
	if log == nil {
		log = logger.Discard()
	}
	s.Log = log
	s.Session.SetLogger(log)
}
