package cli_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/listkit/internal/cli"
	"github.com/rshade/listkit/internal/source"
	listview "github.com/rshade/listkit/internal/tui/list"
)

func numberedEntries(n int) []source.Entry {
	entries := []source.Entry{{Title: "Items", Header: true}}
	for i := 0; i < n; i++ {
		entries = append(entries, source.Entry{Title: fmt.Sprintf("item %d", i)})
	}
	return entries
}

func TestSimulate_Steps(t *testing.T) {
	result, err := cli.Simulate(context.Background(), numberedEntries(100), cli.SimulateOptions{
		Height: 10,
		Width:  40,
		Steps:  []string{"scroll:30", "select:50", "view:80", "reset"},
	})
	require.NoError(t, err)

	require.Len(t, result.Steps, 4)

	scroll := result.Steps[0]
	assert.Equal(t, listview.NoSelection, scroll.Selected)
	assert.Equal(t, 30, scroll.ScrollTop)
	assert.Equal(t, 40, scroll.Materialized, "scrolling fills the viewport below the new offset")

	sel := result.Steps[1]
	assert.Equal(t, 50, sel.Selected)
	assert.Equal(t, "item 49", sel.Title)
	assert.Equal(t, 52, sel.Materialized, "the next selectable entry is materialized too")
	assert.Equal(t, 42, sel.ScrollTop)

	view := result.Steps[2]
	assert.Equal(t, 81, view.Materialized)
	assert.Equal(t, 71, view.ScrollTop)

	assert.Equal(t, listview.NoSelection, result.Steps[3].Selected)
	assert.Empty(t, result.Steps[3].Title)

	assert.Equal(t, 101, result.Items)
	assert.Equal(t, 1, result.FirstSelectable)
	assert.Equal(t, 100, result.LastSelectable)
	assert.Equal(t, 101, result.ContentHeight)
	assert.Equal(t, 10, result.ViewportHeight)
	assert.Empty(t, result.View)
}

func TestSimulate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		step    string
		wantErr error
	}{
		{name: "unknown step", step: "sideways", wantErr: cli.ErrUnknownStep},
		{name: "missing number", step: "select", wantErr: cli.ErrUnknownStep},
		{name: "bad number", step: "scroll:far", wantErr: cli.ErrUnknownStep},
		{name: "header is out of range", step: "select:0", wantErr: listview.ErrIndexOutOfRange},
		{name: "past the end", step: "view:500", wantErr: listview.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cli.Simulate(context.Background(), numberedEntries(5), cli.SimulateOptions{
				Height: 5,
				Width:  40,
				Steps:  []string{tt.step},
			})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSimulate_View(t *testing.T) {
	result, err := cli.Simulate(context.Background(), numberedEntries(3), cli.SimulateOptions{
		Height:      6,
		Width:       30,
		Steps:       []string{"down"},
		Placeholder: "~",
		View:        true,
	})
	require.NoError(t, err)
	assert.Contains(t, result.View, "item 0")
	assert.Contains(t, result.View, "item 2")
	assert.NotContains(t, result.View, "~", "every line is materialized")
}

func TestSimulateCmd_JSON(t *testing.T) {
	setupCLITest(t)
	path := writeNumberedList(t, 100)

	output, err := executeCLI(t, nil,
		"simulate", path, "--height", "10", "--width", "40", "--keys", "down,end", "--output", "json")
	require.NoError(t, err)

	var result cli.SimulateResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))

	assert.Equal(t, 101, result.Items)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, cli.SimulateStep{
		Step: "down", Selected: 1, Title: "item 0", Materialized: 10, ScrollTop: 0,
	}, result.Steps[0])
	assert.Equal(t, cli.SimulateStep{
		Step: "end", Selected: 100, Title: "item 99", Materialized: 101, ScrollTop: 91,
	}, result.Steps[1])
	assert.Equal(t, 101, result.Materialized)
	assert.GreaterOrEqual(t, result.RenderEvents, 3)
}

func TestSimulateCmd_Table(t *testing.T) {
	setupCLITest(t)
	path := writeNumberedList(t, 1500)

	output, err := executeCLI(t, nil, "simulate", path, "--height", "5", "--width", "40", "--keys", "end")
	require.NoError(t, err)

	assert.Contains(t, output, "STEP")
	assert.Contains(t, output, "item 1499")
	assert.Contains(t, output, "Items:            1,501")
	assert.Contains(t, output, "Selectable range: 1..1,500")
}

func TestSimulateCmd_Flags(t *testing.T) {
	setupCLITest(t)
	path := writeNumberedList(t, 3)

	_, err := executeCLI(t, nil, "simulate", path, "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")

	_, err = executeCLI(t, nil, "simulate", path, "--height", "0")
	require.Error(t, err)

	_, err = executeCLI(t, nil, "simulate")
	require.Error(t, err)

	_, err = executeCLI(t, nil, "simulate", path, "--keys", "jump")
	require.ErrorIs(t, err, cli.ErrUnknownStep)
}
