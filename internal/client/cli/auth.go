package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/practicum/internal/client/apiclient"
	"github.com/dmitrijs2005/practicum/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, stores the session and prints the area the
// user lands in.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			return fmt.Errorf("login unsuccessful: invalid credentials")
		}
		return err
	}
	a.setUser(u)

	landing := a.auth.Landing(ctx)
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.DisplayName(), u.Role)
	if landing == common.AdminLanding {
		fmt.Fprintln(a.out, "Admin area: see 'admin' and 'toggle'")
	} else {
		fmt.Fprintln(a.out, "Start with 'programs'")
	}
	return nil
}

// Logout wipes the stored credentials.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Me(ctx context.Context) error {
	u, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	return table(a.out, "ID\tUSERNAME\tNAME\tEMAIL\tROLE", [][]any{
		{u.ID, u.Username, u.DisplayName(), u.Email, u.Role},
	})
}

// Status prints the session state without calling the API.
func (a *App) Status(ctx context.Context) error {
	u := a.currentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "User: %s (%s)\n", u.Username, u.Role)

	access, err := a.store.AccessToken(ctx)
	if err != nil {
		return err
	}
	if exp, err := apiclient.TokenExpiry(access); err == nil {
		left := time.Until(exp).Truncate(time.Second)
		if left > 0 {
			fmt.Fprintf(a.out, "Access token expires in %s\n", left)
		} else {
			fmt.Fprintln(a.out, "Access token expired, it will be refreshed on the next request")
		}
	} else {
		fmt.Fprintln(a.out, "Access token expiry unknown")
	}

	if a.api.Refreshing() {
		fmt.Fprintln(a.out, "Token refresh in progress")
	}
	return nil
}
