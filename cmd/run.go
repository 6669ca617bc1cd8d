package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/baba/internal/classify"
	"github.com/abhisek/baba/internal/config"
	"github.com/abhisek/baba/internal/content"
	"github.com/abhisek/baba/internal/llm"
	"github.com/abhisek/baba/internal/logger"
	"github.com/abhisek/baba/internal/session"
	"github.com/abhisek/baba/internal/store"
	"github.com/abhisek/baba/internal/tutor"
)

// services holds the dependencies shared by serve and the one-shot commands.
type services struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *store.Store
	repo    session.Repository
	router  *tutor.Router
	closers []func() error
}

// openStorage loads configuration and opens the store and session backend.
// With persistent set, the memory session backend is replaced by sqlite so
// one-shot commands keep state between runs.
func openStorage(cmd *cobra.Command, persistent bool) (*services, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.DBPath = dbPath
	}
	if persistent && cfg.SessionStore == config.StoreMemory {
		cfg.SessionStore = config.StoreSQLite
	}

	log, err := logger.New(cfg.LogMode, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	s := &services{cfg: cfg, log: log}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s.store = st
	s.closers = append(s.closers, st.Close)

	switch cfg.SessionStore {
	case config.StoreMemory:
		s.repo = session.NewMemoryRepository()
	case config.StoreRedis:
		rdb, err := store.NewRedisSessionRepo(ctx, cfg.Redis)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect session store: %w", err)
		}
		s.closers = append(s.closers, rdb.Close)
		s.repo = session.NewRecordRepository(rdb)
	default:
		s.repo = session.NewRecordRepository(st.SessionRepo())
	}
	return s, nil
}

// openServices opens storage, builds the LLM provider and wires the
// tutoring router.
func openServices(cmd *cobra.Command, persistent bool) (*services, error) {
	s, err := openStorage(cmd, persistent)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, st := s.cfg, s.log, s.store

	if err := cfg.LLM.Validate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		s.Close()
		return nil, err
	}
	log.Info("LLM provider ready", "provider", cfg.LLM.Provider, "model", provider.ModelID())

	s.router = tutor.NewRouter(
		classify.NewClassifier(provider, log),
		content.NewGenerator(provider, content.DefaultConfig()),
		log,
	).WithTimeout(cfg.LLM.Timeout)

	return s, nil
}

// Close releases the store and session backends in reverse order.
func (s *services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	if s.log != nil {
		s.log.Sync()
	}
	return errors.Join(errs...)
}
