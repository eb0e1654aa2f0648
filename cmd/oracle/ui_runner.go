package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"oracle/internal/driver"
	"oracle/internal/explain"
	"oracle/internal/report"
	"oracle/internal/ui"
)

type resolveOutcome struct {
	result *driver.ResolvedReport
	err    error
}

// runCheckWithUI resolves the report in the background while the
// browser shows a spinner, then hands the resolved report to the
// browser for interactive reading.
func runCheckWithUI(ctx context.Context, title string, rep *report.Report, resolver *explain.Resolver, opts driver.ResolveOptions) (*driver.ResolvedReport, error) {
	results := make(chan ui.Result, 1)
	outcomeCh := make(chan resolveOutcome, 1)

	go func() {
		res, err := driver.ResolveReport(ctx, rep, resolver, opts)
		results <- ui.Result{Report: res, Err: err}
		outcomeCh <- resolveOutcome{result: res, err: err}
	}()

	model := ui.NewBrowserModel(title, results)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
