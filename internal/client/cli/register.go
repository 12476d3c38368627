package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func (a *App) Register(ctx context.Context) {

	firstName, err := GetSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	lastName, err := GetSimpleText(a.reader, "Enter last name (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	userName, err := GetSimpleText(a.reader, "Enter username (8-24 characters)", a.out)
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

	err = a.api.Register(ctx, firstName, lastName, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrUsernameExists) {
			fmt.Fprintln(a.out, "Username already taken, try another one")
		} else {
			fmt.Fprintf(a.out, "Registration unsuccessfull: %s\n", err.Error())
		}
		return
	}

	fmt.Fprintln(a.out, "Success! You can now log in.")

}
