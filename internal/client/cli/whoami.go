package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func (a *App) WhoAmI(ctx context.Context) {

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	info, err := a.api.WhoAmI(ctx, a.token)
	if err != nil {
		a.reportTokenError(err)
		return
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", info.Username)
	fmt.Fprintf(a.out, "Token issued:  %s\n", info.Issued)
	fmt.Fprintf(a.out, "Token expires: %s\n", info.Expiry)

}

func (a *App) Renew(ctx context.Context) {

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	tok, err := a.api.Renew(ctx, a.token)
	if err != nil {
		a.reportTokenError(err)
		return
	}

	a.token = tok.AccessToken
	if err := saveToken(a.config.TokenFile, a.token); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}

	fmt.Fprintln(a.out, "Token renewed")

}

// reportTokenError explains a token rejection and drops the cached token when
// it can no longer be used.
func (a *App) reportTokenError(err error) {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		fmt.Fprintln(a.out, "Session expired, please log in again")
	case errors.Is(err, common.ErrInvalidToken):
		fmt.Fprintln(a.out, "Session is invalid, please log in again")
	default:
		fmt.Fprintf(a.out, "error: %s\n", err.Error())
		return
	}

	a.token = ""
	if err := clearToken(a.config.TokenFile); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}
}
