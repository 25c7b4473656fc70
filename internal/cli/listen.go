package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"auris-notifier/config"
	"auris-notifier/internal/alert"
	alertUC "auris-notifier/internal/alert/usecase"
	"auris-notifier/internal/listener"
	listenerUC "auris-notifier/internal/listener/usecase"
	navigateUC "auris-notifier/internal/navigate/usecase"
	"auris-notifier/pkg/jwt"
	"auris-notifier/pkg/realtime"
)

func newListenCmd() *cobra.Command {
	var (
		host, userID, token, redirect string
		alertMode, navigateMode       string
		port                          int
		exitOnRedirect                bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Listen for notifications and redirect after each one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("user") {
				cfg.Client.UserID = userID
			}
			if flags.Changed("token") {
				cfg.Client.Token = token
			}
			if flags.Changed("redirect") {
				cfg.Client.RedirectURL = redirect
			}
			if flags.Changed("alert") {
				cfg.Client.AlertMode = alertMode
			}
			if flags.Changed("navigate") {
				cfg.Client.NavigateMode = navigateMode
			}
			if flags.Changed("exit-on-redirect") {
				cfg.Client.ExitOnRedirect = exitOnRedirect
			}

			if err := cfg.ValidateListener(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if cfg.Client.UserID == "" {
				sub, err := jwt.SubjectUnverified(cfg.Client.Token)
				if err != nil {
					return fmt.Errorf("user id from token: %w", err)
				}
				cfg.Client.UserID = sub
			}

			return runListener(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&host, "host", "", "server host (NOTIFIER_SERVER_HOST)")
	f.IntVar(&port, "port", 0, "server port (NOTIFIER_SERVER_PORT)")
	f.StringVar(&userID, "user", "", "user id to join as (NOTIFIER_USER_ID)")
	f.StringVar(&token, "token", "", "bearer token; its subject is used when --user is empty (NOTIFIER_TOKEN)")
	f.StringVar(&redirect, "redirect", "", "URL opened after each notification (NOTIFIER_REDIRECT_URL)")
	f.StringVar(&alertMode, "alert", "", "alert mode: terminal or desktop (NOTIFIER_ALERT_MODE)")
	f.StringVar(&navigateMode, "navigate", "", "navigation mode: browser or print (NOTIFIER_NAVIGATE_MODE)")
	f.BoolVar(&exitOnRedirect, "exit-on-redirect", false, "stop after the first redirect (NOTIFIER_EXIT_ON_REDIRECT)")
	return cmd
}

func runListener(cmd *cobra.Command, cfg *config.Config) error {
	ctx := cmd.Context()
	logger := initLogger(cfg.Logger)

	var header http.Header
	if cfg.Client.Token != "" {
		header = http.Header{"Authorization": {"Bearer " + cfg.Client.Token}}
	}

	socket := realtime.New(realtime.Config{
		URL:             cfg.Server.ServerURL(),
		Header:          header,
		DialTimeout:     cfg.Client.DialTimeout,
		WriteWait:       cfg.Client.WriteWait,
		PingTimeout:     cfg.Client.PingTimeout,
		MaxMessageSize:  cfg.Client.MaxMessageSize,
		Reconnect:       cfg.Reconnect.Enabled,
		InitialInterval: cfg.Reconnect.InitialInterval,
		MaxInterval:     cfg.Reconnect.MaxInterval,
		MaxAttempts:     cfg.Reconnect.MaxAttempts,
	}, logger)

	presenter, err := alertUC.New(logger, alert.Options{
		Mode:   cfg.Client.AlertMode,
		Input:  cmd.InOrStdin(),
		Output: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	navigator, err := navigateUC.New(logger, cfg.Client.NavigateMode, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var reporter listener.FaultReporter
	if d := initDiscord(ctx, cfg.Discord, logger); d != nil {
		defer d.Close()
		reporter = d
	}

	uc, err := listenerUC.New(logger, socket, presenter, navigator, reporter, listener.Options{
		UserID:         cfg.Client.UserID,
		RedirectURL:    cfg.Client.RedirectURL,
		ExitOnRedirect: cfg.Client.ExitOnRedirect,
	})
	if err != nil {
		return err
	}

	logger.Infof(ctx, "cli.listen: connecting to %s as %s", cfg.Server.ServerURL(), cfg.Client.UserID)
	return uc.Run(ctx)
}
