package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readCredentials prompts for email and password and checks their shape
// before anything is sent. The caller wipes the password.
func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}

	if err := services.ValidateCredentials(email, password); err != nil {
		common.WipeByteArray(password)
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for credentials and names and creates the account.
//
// An account the API reports as verified is logged in straight away.
// Otherwise the user is sent to the verification screen and asked to run
// "verify <token>" with the token from the confirmation email. The password
// is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	a.nav.Go(common.RegisterPath)

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	firstName, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.auth.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		return err
	}

	if resp.User.IsVerified {
		a.startSession(&resp.User)
		return nil
	}

	a.nav.Go(common.VerifyEmailPath)
	fmt.Fprintf(a.out, "Account created. Check %s for the confirmation link, then run: verify <token>\n", resp.User.Email)
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// If the server is unreachable the mode becomes disabled; any other failure
// is returned as is. The password is wiped before returning.
func (a *App) Login(ctx context.Context, _ []string) error {
	a.nav.Go(common.LoginPath)

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		if services.Offline(err) {
			a.setMode(ModeDisabled)
		}
		return err
	}

	a.startSession(u)
	return nil
}

func (a *App) startSession(u *models.User) {
	a.setUser(u)
	log.Printf("Login successful, welcome %s", u.DisplayName())
	a.setMode(ModeOnline)
	a.nav.Go(common.DashboardPath)
}

// VerifyEmail confirms the account with the token from the confirmation
// email. The verification screen is kept while the call runs, so a failing
// session renewal in the background does not move the user away from it.
func (a *App) VerifyEmail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("verify <token>")
	}
	a.nav.Go(common.VerifyEmailPath)

	resp, err := a.auth.VerifyEmail(ctx, args[0])
	if err != nil {
		return err
	}

	msg := resp.Message
	if msg == "" {
		msg = "Email verified"
	}
	fmt.Fprintln(a.out, msg+". You can log in now.")
	a.nav.Go(common.LoginPath)
	return nil
}

// Logout clears the stored tokens and the local cache.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	a.nav.Go(common.LoginPath)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Me shows the logged in user and when the current access token runs out.
func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.setUser(u)

	fmt.Fprintf(a.out, "%s <%s>\n", u.DisplayName(), u.Email)
	if !u.IsVerified {
		fmt.Fprintln(a.out, "Email not verified")
	}
	if exp, ok := a.auth.SessionExpiry(ctx); ok {
		fmt.Fprintf(a.out, "Access token valid until %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}
