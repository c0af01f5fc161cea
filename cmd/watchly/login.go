package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oukeidos/watchly-config/internal/prompt"
	sessionstore "github.com/oukeidos/watchly-config/internal/session"
	"github.com/oukeidos/watchly-config/internal/wizard"
)

const (
	envAuthKey  = "WATCHLY_AUTH_KEY"
	envPassword = "WATCHLY_PASSWORD"
)

type loginOptions struct {
	email   string
	authKey bool
}

func newLoginCmd(g *globalOptions) *cobra.Command {
	opts := loginOptions{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your Stremio account or auth key",
		Long: `Sign in with your Stremio account or auth key.

The login is remembered for 30 days. The password or key is read from the
terminal without echo, or from WATCHLY_PASSWORD / WATCHLY_AUTH_KEY.`,
		Example: `  watchly login --email me@example.com
  watchly login --auth-key
  watchly login --launch-url 'watchly://configure?key=...'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, g, &opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().StringVar(&opts.email, "email", "", "Stremio account email")
	cmd.Flags().BoolVar(&opts.authKey, "auth-key", false, "Sign in with a Stremio auth key instead of a password")
	return cmd
}

func runLogin(cmd *cobra.Command, g *globalOptions, opts *loginOptions) error {
	ctx, stop := signalContext()
	defer stop()

	s, err := openSession(cmd, g, false)
	if err != nil {
		return err
	}

	switch {
	case g.launchURL != "":
		if _, _, ok := wizard.ExtractLaunchKey(g.launchURL); !ok {
			return fmt.Errorf("launch URL has no key or authKey parameter")
		}
		if err := s.app.Boot(ctx, g.launchURL); err != nil {
			return err
		}
	case opts.authKey || (opts.email == "" && os.Getenv(envAuthKey) != ""):
		key, err := readSecret(newConfirmer(), envAuthKey, "Stremio auth key: ")
		if err != nil {
			return err
		}
		if err := s.app.LoginWithAuthKey(ctx, key); err != nil {
			return err
		}
	default:
		c := newConfirmer()
		email := strings.TrimSpace(opts.email)
		if email == "" {
			if email, err = c.Ask("Email: "); err != nil {
				return loginInputError(err)
			}
		}
		password, err := readSecret(c, envPassword, "Password: ")
		if err != nil {
			return err
		}
		if err := s.app.LoginWithPassword(ctx, email, password); err != nil {
			return err
		}
	}

	form := s.app.State().Form
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Signed in as %s.\n", accountLabel(form))
	if form.Exists {
		fmt.Fprintln(out, "Existing settings found. Run 'watchly configure' to update them.")
	} else {
		fmt.Fprintln(out, "No settings yet. Run 'watchly configure' to create your addon.")
	}
	return nil
}

func readSecret(c *prompt.Confirmer, envVar, label string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
		return v, nil
	}
	v, err := c.Secret(label)
	if err != nil {
		return "", loginInputError(err)
	}
	return v, nil
}

func loginInputError(err error) error {
	if errors.Is(err, prompt.ErrNotInteractive) {
		return fmt.Errorf("%w: pass --email and set %s, or set %s", err, envPassword, envAuthKey)
	}
	return fmt.Errorf("error reading input: %w", err)
}

func accountLabel(f wizard.Form) string {
	if f.Account != "" {
		return f.Account
	}
	return f.Identity
}

func newLogoutCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, g, false)
			if err != nil {
				return err
			}
			s.app.Logout()
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

type statusOptions struct {
	verify bool
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	opts := statusOptions{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the remembered login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, g, &opts)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Check the login against the backend")
	return cmd
}

func runStatus(cmd *cobra.Command, g *globalOptions, opts *statusOptions) error {
	s, err := openSession(cmd, g, false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend: %s\n", s.env.Config.Backend.URL)

	cred, err := s.env.Sessions.Peek()
	if errors.Is(err, sessionstore.ErrNoCredential) || (err == nil && !cred.Usable()) {
		fmt.Fprintln(out, "Login: not signed in")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read remembered login: %w", err)
	}

	fmt.Fprintf(out, "Login: %s\n", cred.Describe())
	switch {
	case cred.Expired(time.Now()):
		fmt.Fprintln(out, "Expires: expired (the next command will sign you out)")
	default:
		fmt.Fprintf(out, "Expires: %s\n", cred.Expiry().Local().Format(time.RFC1123))
	}

	if !opts.verify {
		return nil
	}
	ctx, stop := signalContext()
	defer stop()
	if err := s.boot(ctx, ""); err != nil {
		return err
	}
	form := s.app.State().Form
	switch {
	case !form.LoggedIn:
		fmt.Fprintln(out, "Verified: no")
	case form.Exists:
		fmt.Fprintln(out, "Verified: yes (settings saved)")
	default:
		fmt.Fprintln(out, "Verified: yes (no settings yet)")
	}
	return nil
}
