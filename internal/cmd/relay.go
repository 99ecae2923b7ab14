package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/config"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/logging"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/relay"
)

// RelayCmd returns the `launchgrid relay` command group.
func RelayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run or query the cross-window drag relay",
	}
	cmd.AddCommand(relayServeCmd())
	cmd.AddCommand(relayStatusCmd())
	return cmd
}

func relayServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the relay until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr == "" {
				addr = cfg.Relay.Addr
			}
			level, err := config.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			log := logging.New(cmd.ErrOrStderr(), level)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			store := relay.NewStore(relay.DefaultSessionTTL)
			log.Info("starting relay", "addr", addr, "ttl", relay.DefaultSessionTTL)
			return relay.Serve(ctx, addr, store)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: relay.addr)")
	return cmd
}

func relayStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show relay health and the active drag session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			client := relay.NewClient(cfg.Relay.URL)
			out := cmd.OutOrStdout()

			status, err := client.Health()
			if err != nil {
				return fmt.Errorf("relay at %s: %w", cfg.Relay.URL, err)
			}
			fmt.Fprintf(out, "relay %s at %s\n", status, cfg.Relay.URL)

			s, err := client.Active()
			if errors.Is(err, relay.ErrNoActiveSession) {
				fmt.Fprintln(out, "no active drag")
				return nil
			}
			if err != nil {
				return fmt.Errorf("active session: %w", err)
			}
			fmt.Fprintf(out, "active drag %s: %s from window %s, started %s\n",
				s.ID, plural(len(s.Items), "item"), s.Source.WindowID, humanize.Time(s.StartedAt))
			return nil
		},
	}
}
