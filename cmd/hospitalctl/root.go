package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/infrastructure/config"
	"github.com/priyanshupatel84/ai-healthcare/internal/session"
	"github.com/priyanshupatel84/ai-healthcare/pkg/logger"
)

var errNotLoggedIn = errors.New("not logged in; run hospitalctl login")

// app carries state shared by every subcommand. The backend is opened on
// first use so that logout works without a database.
type app struct {
	sessionFile string
	loadConfig  func(ctx context.Context) (*config.Config, error)
	connect     connectFunc

	cfg     *config.Config
	log     zerolog.Logger
	backend *backend
}

const closeTimeout = 5 * time.Second

func newApp() *app {
	return &app{loadConfig: config.Load, connect: connectMongo}
}

// NewRootCmd creates the root command for hospitalctl.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

// execute runs cmd and then closes whatever backend it opened. Cobra skips
// post-run hooks when RunE fails, so the close happens here.
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) close() error {
	be := a.backend
	a.backend = nil
	if be == nil || be.Close == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return be.Close(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hospitalctl",
		Short: "Operate the hospital auth service from the command line",
		Long: `hospitalctl signs operators in, shows the cached session and approves
pending doctor accounts. The session token is cached in a local file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:    cfg.LogLevel,
				Pretty:   true,
				Output:   os.Stderr,
				Service:  "hospitalctl",
				NoCaller: true,
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "session cache path (default $CLI_SESSION_FILE)")

	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	cmd.AddCommand(newWhoamiCmd(a))
	cmd.AddCommand(newApproveCmd(a))

	return cmd
}

func (a *app) cache() (*session.FileCache, error) {
	path := a.sessionFile
	if path == "" {
		path = a.cfg.CLI.SessionFile
	}
	return session.NewFileCache(path)
}

func (a *app) open(ctx context.Context) (*backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	be, err := a.connect(ctx, a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.backend = be
	return be, nil
}

// whoami resolves the cached token against the live user record, the same
// path the server's guard takes for a cookie.
func (a *app) whoami(ctx context.Context) (domain.Identity, error) {
	cache, err := a.cache()
	if err != nil {
		return domain.Identity{}, err
	}
	be, err := a.open(ctx)
	if err != nil {
		return domain.Identity{}, err
	}

	sess := session.NewSession(be.Resolver, cache)
	if !sess.Init(ctx) {
		return domain.Identity{}, errNotLoggedIn
	}
	id, _ := sess.Identity()
	return id, nil
}
