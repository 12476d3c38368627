// Package cli implements the interactive authkeeper client. It drives the
// HTTP API with a small read-eval-print loop: register, login, whoami, renew,
// logout. The access token is cached on disk between invocations.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
)

// api defines the server surface the CLI needs. The real client.Client
// satisfies this interface; tests can provide a lightweight stub.
type api interface {
	Register(ctx context.Context, firstName, lastName, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*client.AccessToken, error)
	WhoAmI(ctx context.Context, token string) (*client.Introspection, error)
	Renew(ctx context.Context, token string) (*client.AccessToken, error)
}

type App struct {
	config *config.Config
	api    api
	token  string
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient := client.New(c.ServerEndpointAddr, c.RequestTimeout)

	token, err := loadToken(c.TokenFile)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		api:    apiClient,
		token:  token,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) Run(ctx context.Context) {
	a.Main(ctx)
}
