package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func (a *App) Login(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	defer common.WipeByteArray(password)

	tok, err := a.api.Login(ctx, userName, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			fmt.Fprintln(a.out, "Login unsuccessfull: invalid username/password")
		case errors.Is(err, common.ErrInactiveUser):
			fmt.Fprintln(a.out, "Login unsuccessfull: account is inactive")
		default:
			fmt.Fprintf(a.out, "Login unsuccessfull: %s\n", err.Error())
		}
		return
	}

	a.token = tok.AccessToken
	if err := saveToken(a.config.TokenFile, a.token); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}

	fmt.Fprintln(a.out, "Login successfull")

}

func (a *App) Logout(ctx context.Context) {

	a.token = ""
	if err := clearToken(a.config.TokenFile); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}

	fmt.Fprintln(a.out, "Logged out")

}
