package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tern/internal/driver"
	"tern/internal/ui"
)

type checkOutcome struct {
	results []*driver.Result
	err     error
}

func runCheckWithUI(ctx context.Context, paths []string, opts driver.ParallelOptions) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	optsCopy := opts
	optsCopy.Events = events
	go func() {
		results, err := driver.CheckPaths(ctx, paths, optsCopy)
		outcomeCh <- checkOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking manifests", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
