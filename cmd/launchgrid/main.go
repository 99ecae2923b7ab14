package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/cmd"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/config"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/library"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/logging"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/relay"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "launchgrid",
		Short: "launchgrid - terminal game launcher",
		Long:  "launchgrid: browse, select and launch games on a grid; drag them into folders, across windows too.",
		RunE: func(c *cobra.Command, _ []string) error {
			return runTUI(c.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LibraryCmd())
	root.AddCommand(cmd.RelayCmd())
	root.AddCommand(cmd.ConfigCmd())
	root.AddCommand(cmd.VersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(ctx context.Context) error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errors.New("launchgrid needs an interactive terminal; try 'launchgrid library list'")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	_, closer, err := logging.Setup(cfg.Log, cfg.LogPath())
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	libPath := cfg.LibraryPath()
	games, err := library.Load(libPath)
	if err != nil {
		return err
	}

	windowID := uuid.NewString()
	slog.Info("launcher starting", "window", windowID, "library", libPath, "games", len(games))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	opts := ui.Options{
		Config:      cfg,
		LibraryPath: libPath,
		Games:       games,
		WindowID:    windowID,
	}
	var (
		client    *relay.Client
		transport *relay.Transport
	)
	if cfg.Relay.Enabled {
		client = relay.NewClient(cfg.Relay.URL)
		transport = relay.NewTransport(client)
		opts.Transport = transport
		opts.Relay = client
	}

	p := tea.NewProgram(ui.NewApp(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	if cfg.Library.Watch {
		w, err := library.NewWatcher(libPath, library.DefaultDebounce)
		if err != nil {
			slog.Warn("library watch disabled", "err", err)
		} else {
			g.Go(func() error {
				return w.Run(ctx, func(games []library.Game) {
					p.Send(ui.LibraryReloadedMsg{Games: games})
				})
			})
		}
	}
	if transport != nil {
		g.Go(func() error { return transport.Run(ctx) })
		g.Go(func() error {
			return relay.Watch(ctx, client, windowID, cfg.Relay.PollInterval, func(s *dragsession.Session) {
				p.Send(ui.IncomingSessionMsg{Session: s})
			})
		})
	}

	g.Go(func() error {
		defer stop()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("tui error: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
