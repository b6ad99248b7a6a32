package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/listkit/internal/config"
	"github.com/rshade/listkit/internal/source"
	"github.com/rshade/listkit/internal/tui"
	listview "github.com/rshade/listkit/internal/tui/list"
)

// Simulation output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
)

const (
	defaultSimulateHeight = 20
	fallbackTerminalWidth = 80
	tabwriterPadding      = 2
)

// ErrUnknownStep is returned for a --keys step that is not recognized.
var ErrUnknownStep = errors.New("unknown step")

// SimulateOptions configures a headless run.
type SimulateOptions struct {
	Height      int
	Width       int
	Steps       []string
	ShowDetail  bool
	Placeholder string
	View        bool
}

// SimulateStep is the list state after one replayed step.
type SimulateStep struct {
	Step         string `json:"step"`
	Selected     int    `json:"selected"`
	Title        string `json:"title,omitempty"`
	Materialized int    `json:"materialized"`
	ScrollTop    int    `json:"scroll_top"`
}

// SimulateResult summarizes a headless run.
type SimulateResult struct {
	Items           int            `json:"items"`
	FirstSelectable int            `json:"first_selectable"`
	LastSelectable  int            `json:"last_selectable"`
	Materialized    int            `json:"materialized"`
	Selected        int            `json:"selected"`
	ContentHeight   int            `json:"content_height"`
	ScrollTop       int            `json:"scroll_top"`
	ViewportHeight  int            `json:"viewport_height"`
	RenderEvents    int            `json:"render_events"`
	Steps           []SimulateStep `json:"steps"`
	View            string         `json:"view,omitempty"`
}

// NewSimulateCmd creates the simulate command that replays navigation without a terminal.
func NewSimulateCmd() *cobra.Command {
	var (
		opts   SimulateOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "simulate FILE...",
		Short: "Replay list navigation headlessly and report rendering state",
		Long: `Loads entries into the list engine backed by an off-screen viewport and
replays a sequence of steps, reporting how many entries were rendered after each.

Steps (comma separated):
  up, down, home, end   keyboard navigation
  select:N              select entry N
  scroll:N              scroll the viewport by N lines (negative scrolls up)
  view:N                scroll entry N into view
  reset                 clear the selection`,
		Example: `  # Walk to the end of a long list in a 20 line viewport
  listkit simulate items.txt --height 20 --keys down,down,end

  # Scroll and inspect the visible rows as JSON
  listkit simulate items.yaml --keys scroll:40 --view --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args, opts, output)
		},
	}

	cmd.Flags().IntVar(&opts.Height, "height", defaultSimulateHeight, "viewport height in lines")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "viewport width in columns (0 = terminal width)")
	cmd.Flags().StringSliceVar(&opts.Steps, "keys", nil, "steps to replay, comma separated")
	cmd.Flags().BoolVar(&opts.View, "view", false, "include the final viewport contents")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table or json")

	return cmd
}

func runSimulate(cmd *cobra.Command, paths []string, opts SimulateOptions, output string) error {
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("unsupported output format: %s", output)
	}
	if opts.Height <= 0 {
		return fmt.Errorf("height must be > 0, got %d", opts.Height)
	}

	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()
	opts.ShowDetail = cfg.List.ShowDetail
	opts.Placeholder = cfg.List.Placeholder
	if opts.Width <= 0 {
		opts.Width = terminalWidth(os.Stdout)
	}

	entries, err := source.LoadAll(ctx, paths)
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}

	result, err := Simulate(ctx, entries, opts)
	if err != nil {
		return err
	}

	if output == outputJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return renderSimulateTable(cmd.OutOrStdout(), result)
}

// Simulate runs entries through the list engine over an off-screen row container
// and replays opts.Steps.
func Simulate(ctx context.Context, entries []source.Entry, opts SimulateOptions) (*SimulateResult, error) {
	rows := tui.NewRowContainer(opts.Height)
	engine, err := tui.NewEntryEngine(ctx, rows, tui.DefaultStyles(), opts.Width, opts.ShowDetail)
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	renders := 0
	unsubscribe := engine.OnRenderedItemsChanged(func(int) { renders++ })
	defer unsubscribe()

	if err := engine.SetItems(ctx, entries); err != nil {
		return nil, fmt.Errorf("setting items: %w", err)
	}

	result := &SimulateResult{Steps: make([]SimulateStep, 0, len(opts.Steps))}
	for _, step := range opts.Steps {
		if err := applyStep(ctx, engine, rows, step); err != nil {
			return nil, fmt.Errorf("step %q: %w", step, err)
		}
		result.Steps = append(result.Steps, snapshotStep(step, engine, rows))
	}

	result.Items = engine.ItemCount()
	result.FirstSelectable = engine.FirstSelectableIndex()
	result.LastSelectable = engine.LastSelectableIndex()
	result.Materialized = engine.NumMaterialized()
	result.Selected = engine.Selected()
	result.ContentHeight = rows.ContentHeight()
	result.ScrollTop = rows.ScrollTop()
	result.ViewportHeight = rows.ViewportHeight()
	result.RenderEvents = renders
	if opts.View {
		result.View = rows.View(engine.Selected(), opts.Width, opts.Placeholder, tui.DefaultStyles())
	}

	logger.Debug().Ctx(ctx).
		Int("items", result.Items).
		Int("materialized", result.Materialized).
		Int("render_events", renders).
		Msg("simulation finished")
	return result, nil
}

func applyStep(
	ctx context.Context,
	engine *listview.Engine[source.Entry],
	rows *tui.RowContainer,
	step string,
) error {
	name, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(step)), ":")

	switch name {
	case "up", "arrowup":
		return engine.Navigate(ctx, listview.KeyUp, true)
	case "down", "arrowdown":
		return engine.Navigate(ctx, listview.KeyDown, true)
	case "home":
		return engine.Navigate(ctx, listview.KeyHome, true)
	case "end":
		return engine.Navigate(ctx, listview.KeyEnd, true)
	case "reset":
		engine.ResetSelected()
		return nil
	case "select", "scroll", "view":
		if !hasArg {
			return fmt.Errorf("%w: %s needs a number", ErrUnknownStep, name)
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownStep, err)
		}
		switch name {
		case "select":
			return engine.SetSelected(ctx, n)
		case "scroll":
			rows.ScrollBy(n)
			return nil
		default:
			return engine.ScrollIndexIntoView(ctx, n)
		}
	}
	return ErrUnknownStep
}

func snapshotStep(step string, engine *listview.Engine[source.Entry], rows *tui.RowContainer) SimulateStep {
	s := SimulateStep{
		Step:         strings.TrimSpace(step),
		Selected:     engine.Selected(),
		Materialized: engine.NumMaterialized(),
		ScrollTop:    rows.ScrollTop(),
	}
	if entry, ok := engine.SelectedItem(); ok {
		s.Title = entry.Title
	}
	return s
}

// renderSimulateTable writes the step trace followed by a summary.
func renderSimulateTable(w io.Writer, result *SimulateResult) error {
	p := message.NewPrinter(language.English)

	if len(result.Steps) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
		_, _ = fmt.Fprintln(tw, "STEP\tSELECTED\tTITLE\tMATERIALIZED\tSCROLL TOP")
		for _, s := range result.Steps {
			_, _ = p.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\n", s.Step, s.Selected, s.Title, s.Materialized, s.ScrollTop)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = p.Fprintf(w, "Items:            %d\n", result.Items)
	_, _ = p.Fprintf(w, "Selectable range: %d..%d\n", result.FirstSelectable, result.LastSelectable)
	_, _ = p.Fprintf(w, "Materialized:     %d\n", result.Materialized)
	_, _ = p.Fprintf(w, "Selected:         %d\n", result.Selected)
	_, _ = p.Fprintf(w, "Content height:   %d\n", result.ContentHeight)
	_, _ = p.Fprintf(w, "Scroll top:       %d\n", result.ScrollTop)
	_, _ = p.Fprintf(w, "Render events:    %d\n", result.RenderEvents)

	if result.View != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, result.View)
	}
	return nil
}

// terminalWidth returns the width of f when it is a terminal.
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return fallbackTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackTerminalWidth
	}
	return width
}
