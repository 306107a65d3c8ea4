package main

import (
	"context"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-login-manager/internal/config"
	"github.com/jrsteele09/go-login-manager/internal/logging"
	"github.com/jrsteele09/go-login-manager/login"
	"github.com/jrsteele09/go-login-manager/oauthdata/gormstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := gormstore.Open(cfg.StorePath)
	if err != nil {
		return err
	}

	endpoint := oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	exchanger := login.NewExchanger(cfg.ClientID, cfg.ClientSecret, cfg.Scopes, endpoint)

	var identity login.IdentityService = login.NewGoogleUserInfo()
	if cfg.EmailURL != "" {
		identity = login.NewEmailEndpoint(cfg.EmailURL)
	}

	ui := &consoleUI{
		in:           os.Stdin,
		out:          os.Stdout,
		callbackAddr: cfg.CallbackAddr,
		authCodeURL:  exchanger.AuthCodeURL,
	}

	manager, err := login.New(context.Background(),
		login.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
		login.Collaborators{
			Store:     store,
			UI:        ui,
			Logger:    logging.NewConsole(os.Stderr),
			Identity:  identity,
			Exchanger: exchanger,
		})
	if err != nil {
		return err
	}

	return newRootCmd(manager).Execute()
}

func newRootCmd(manager *login.Manager) *cobra.Command {
	root := &cobra.Command{
		Use:          "loginctl",
		Short:        "Manage OAuth2 account sessions",
		SilenceUsage: true,
	}

	var useLocalServer bool
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			figure.NewFigure("loginctl", "cybermedium", true).Print()
			fmt.Println()

			ok := false
			if useLocalServer {
				ok = manager.LoginWithLocalServer(cmd.Context(), "Sign in")
			} else {
				ok = manager.Login(cmd.Context(), "Sign in")
			}
			if !ok {
				return fmt.Errorf("not signed in")
			}
			return printAccounts(manager)
		},
	}
	loginCmd.Flags().BoolVar(&useLocalServer, "local-server", false,
		"receive the verification code on a loopback listener instead of pasting it")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List signed-in accounts",
		RunE: func(*cobra.Command, []string) error {
			return printAccounts(manager)
		},
	}

	switchCmd := &cobra.Command{
		Use:   "switch <email>",
		Short: "Make an account the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !manager.SwitchActiveAccount(cmd.Context(), args[0]) {
				return fmt.Errorf("no signed-in account for %s", args[0])
			}
			return printAccounts(manager)
		},
	}

	var all bool
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out the active account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				manager.LogOutAll(cmd.Context(), true)
				return nil
			}
			manager.LogOut(cmd.Context(), true)
			return nil
		},
	}
	logoutCmd.Flags().BoolVar(&all, "all", false, "sign out every account")

	root.AddCommand(loginCmd, accountsCmd, switchCmd, logoutCmd)
	return root
}

func printAccounts(manager *login.Manager) error {
	accounts := manager.ListAccounts()
	if accounts.Size() == 0 {
		fmt.Println("No accounts signed in.")
		return nil
	}
	fmt.Printf("* %s (active)\n", accounts.Active.Email)
	for _, acct := range accounts.Inactive {
		fmt.Printf("  %s\n", acct.Email)
	}
	return nil
}
