package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dartforge/internal/driver"
	"dartforge/internal/pipeline"
	"dartforge/internal/ui"
)

type renderOutcome struct {
	results []driver.Result
	timings pipeline.Timings
	err     error
}

func runRenderWithUI(ctx context.Context, title string, tasks []driver.Task, opts driver.Options) ([]driver.Result, pipeline.Timings, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan renderOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		results, timings, err := driver.RenderAll(ctx, tasks, optsCopy)
		outcomeCh <- renderOutcome{results: results, timings: timings, err: err}
		close(events)
	}()

	names := make([]string, 0, len(tasks))
	for _, task := range tasks {
		names = append(names, task.Entry.Name)
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, outcome.timings, uiErr
	}
	return outcome.results, outcome.timings, outcome.err
}
