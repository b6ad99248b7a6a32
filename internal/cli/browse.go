package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/listkit/internal/config"
	"github.com/rshade/listkit/internal/source"
	"github.com/rshade/listkit/internal/tui"
)

// ErrNotTerminal is returned when browse runs without an interactive terminal.
var ErrNotTerminal = errors.New("browse requires an interactive terminal, use simulate for headless runs")

// NewBrowseCmd creates the browse command that opens entries in the interactive list.
func NewBrowseCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "browse FILE...",
		Short: "Browse list entries interactively",
		Long: `Opens the entries of one or more files in an interactive list.

Files are read as YAML, JSON, NDJSON or text based on their extension. In text
files a line starting with "# " is a section header and a tab separates the
title from its detail line. Headers and disabled entries are skipped by the
arrow keys. The chosen entry is printed on exit.`,
		Example: `  # Browse a YAML list
  listkit browse items.yaml

  # Browse several sources and reload them when they change
  listkit browse fruits.txt vegetables.json --watch`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{annotationInteractive: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, args, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reload sources when they change on disk")

	return cmd
}

func runBrowse(cmd *cobra.Command, paths []string, watch bool) error {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if !streamIsTerminal(in) || !streamIsTerminal(out) {
		return ErrNotTerminal
	}

	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	entries, err := source.LoadAll(ctx, paths)
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}
	logger.Info().Ctx(ctx).Int("entries", len(entries)).Int("sources", len(paths)).Msg("sources loaded")

	model, err := tui.NewBrowserModel(ctx, entries, tui.BrowserOptions{List: cfg.List, Keys: cfg.Keys})
	if err != nil {
		return fmt.Errorf("creating list: %w", err)
	}

	p := tea.NewProgram(model,
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if watch || cfg.List.Watch {
		stop, watchErr := startWatcher(ctx, p, paths)
		if watchErr != nil {
			return watchErr
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	if entry, ok := model.Chosen(); ok {
		_, _ = fmt.Fprintln(out, entry.Title)
	}
	return nil
}

// startWatcher forwards source reloads to the running program until the returned stop is called.
func startWatcher(ctx context.Context, p *tea.Program, paths []string) (func(), error) {
	w, err := source.NewWatcher(paths, source.DefaultDebounceDuration, func(entries []source.Entry, err error) {
		p.Send(tui.ItemsReloadedMsg{Entries: entries, Err: err})
	})
	if err != nil {
		return nil, fmt.Errorf("watching sources: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	go w.Run(watchCtx)

	return func() {
		cancel()
		if closeErr := w.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("closing source watcher")
		}
		<-w.Done()
	}, nil
}
