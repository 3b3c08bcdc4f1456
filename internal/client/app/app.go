package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/client/gateway"
	"github.com/smartshelf/inventory-system/internal/client/guard"
	"github.com/smartshelf/inventory-system/internal/client/session"
	"github.com/smartshelf/inventory-system/internal/core/domain"
)

var ErrMissingToken = errors.New("login response carried no token")

// AuthAPI is the slice of the gateway used by the login flow.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (gateway.LoginResult, error)
	Register(ctx context.Context, r gateway.Registration) (string, error)
}

type App struct {
	Session   *session.Manager
	Navigator *Navigator

	auth AuthAPI
	log  zerolog.Logger
}

func New(s *session.Manager, auth AuthAPI, log zerolog.Logger) *App {
	return &App{
		Session:   s,
		Navigator: NewNavigator(s, log),
		auth:      auth,
		log:       log,
	}
}

// Login authenticates and lands on the role's home page. A role outside the
// known set is rejected and no session is written.
func (a *App) Login(ctx context.Context, email, password string) (string, error) {
	res, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return a.Navigator.Current(), err
	}
	if res.Token == "" {
		return a.Navigator.Current(), &gateway.UnexpectedError{Err: ErrMissingToken}
	}

	role, err := domain.ParseRole(res.Role)
	if err != nil {
		a.log.Warn().Str("role", res.Role).Msg("login rejected: unrecognised role")
		return a.Navigator.Current(), &gateway.UnexpectedError{Err: err}
	}

	if err := a.Session.Set(res.Token, role); err != nil {
		return a.Navigator.Current(), fmt.Errorf("save session: %w", err)
	}
	return a.Navigator.Navigate(guard.HomeRoute(role))
}

// Register creates an account and moves to the login page.
func (a *App) Register(ctx context.Context, r gateway.Registration) (string, error) {
	msg, err := a.auth.Register(ctx, r)
	if err != nil {
		return "", err
	}
	if _, err := a.Navigator.Navigate(guard.PathLogin); err != nil {
		return "", err
	}
	return msg, nil
}

// Logout is local only: the token is dropped, the server is not told.
func (a *App) Logout() (string, error) {
	if err := a.Session.Clear(); err != nil {
		return a.Navigator.Current(), err
	}
	return a.Navigator.Navigate(guard.PathLogin)
}
