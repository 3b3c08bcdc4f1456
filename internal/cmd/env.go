package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartshelf/inventory-system/internal/client/app"
	"github.com/smartshelf/inventory-system/internal/client/config"
	"github.com/smartshelf/inventory-system/internal/client/gateway"
	"github.com/smartshelf/inventory-system/internal/client/guard"
	"github.com/smartshelf/inventory-system/internal/client/session"
	"github.com/smartshelf/inventory-system/pkg/logger"
)

// clientEnv is everything a command needs, built once per invocation.
type clientEnv struct {
	cfg     *config.Config
	session *session.Manager
	api     *gateway.Gateway
	app     *app.App
}

func setup(cmd *cobra.Command) (*clientEnv, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Service: "smartshelf",
		Output:  os.Stderr,
	})

	mgr, err := session.NewManager(session.NewFileStore(cfg.SessionFile), log)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	api := gateway.New(cfg.APIURL, mgr,
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithLogger(log),
	)

	return &clientEnv{
		cfg:     cfg,
		session: mgr,
		api:     api,
		app:     app.New(mgr, api, log),
	}, nil
}

var (
	errNotLoggedIn = errors.New("not logged in: run `smartshelf login` first")
	errNoAccess    = errors.New("access denied")
)

// open navigates to path through the guard and fails unless the guard
// allowed it.
func (e *clientEnv) open(path string) error {
	landed, err := e.app.Navigator.Navigate(path)
	if err != nil {
		return err
	}
	switch landed {
	case path:
		return nil
	case guard.PathLogin:
		return errNotLoggedIn
	}
	return fmt.Errorf("%w: %s is not available to your role (home is %s)", errNoAccess, path, landed)
}

// displayError shows a page message while keeping the cause for errors.Is.
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }

func (e *displayError) Unwrap() error { return e.err }

func pageError(msg string, err error) error {
	if msg == "" {
		msg = gateway.UserMessage(err)
	}
	return &displayError{msg: msg, err: err}
}
