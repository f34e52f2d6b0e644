/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Tedomi2525/My-project/config"
	"github.com/Tedomi2525/My-project/internal/api"
	"github.com/Tedomi2525/My-project/internal/auth"
	"github.com/Tedomi2525/My-project/internal/guard"
	"github.com/Tedomi2525/My-project/internal/logger"
	"github.com/Tedomi2525/My-project/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	noPersist bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "examctl",
	Short: "Command line client for the exam management backend",
	Long: `examctl signs in to the exam management backend and manages classes,
exams, questions, users and results from the terminal. The session is kept
between invocations in a 24h cookie file (or Redis, see EXAM_SESSION_BACKEND).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(logger.NewPrettyHandler(os.Stderr, &logger.Options{Level: level})))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "keep the session in memory only")
}

// app is the composition root shared by all client commands.
type app struct {
	cfg     config.Config
	store   *session.Store
	client  *api.Client
	router  *guard.Router
	gateway *auth.Gateway
	closers []func() error
}

func newApp() (*app, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	persister, err := a.persister()
	if err != nil {
		return nil, err
	}

	log := slog.Default()
	a.store = session.New(persister)
	a.client = api.New(cfg.APIBase, a.store, api.WithTimeout(cfg.RequestTimeout), api.WithLogger(log))
	a.router = guard.NewRouter(a.store, log)
	a.gateway = auth.NewGateway(a.store, a.client, a.router,
		auth.WithSecret(cfg.JWTSecret),
		auth.WithLogger(log),
	)
	return a, nil
}

func (a *app) persister() (session.Persister, error) {
	if noPersist {
		return session.NewMemoryPersister(), nil
	}
	switch a.cfg.Session.Backend {
	case config.SessionBackendMemory:
		return session.NewMemoryPersister(), nil
	case config.SessionBackendRedis:
		rc := a.cfg.Session.Redis
		client := redis.NewClient(&redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		})
		a.closers = append(a.closers, client.Close)
		return session.NewRedisPersister(client, rc.Key), nil
	default:
		return session.NewFilePersister(a.cfg.Session.File), nil
	}
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			slog.Debug("close failed", "error", err)
		}
	}
}

// restore revalidates the persisted session. A rejected session has
// already been cleared, so the command carries on logged out.
func (a *app) restore(ctx context.Context) error {
	err := a.gateway.RestoreSession(ctx)
	if errors.Is(err, auth.ErrSessionExpired) {
		slog.Warn("stored session is no longer valid, please log in again")
		return nil
	}
	return err
}

// withApp builds the app, restores the session and runs fn.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.restore(cmd.Context()); err != nil {
			return err
		}
		return fn(cmd, args, a)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func parseIDArg(name, raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
