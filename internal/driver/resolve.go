// Package driver orchestrates the batch pipeline: take a decoded
// report, run every diagnostic through the explanation resolver, and
// hand the result to a formatter or the interactive browser.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"oracle/internal/diag"
	"oracle/internal/explain"
	"oracle/internal/report"
)

// Resolved is one diagnostic together with its resolved explanation.
type Resolved struct {
	Diagnostic  diag.Diagnostic
	Explanation string
	// Matched is false when the explanation is the generic fallback.
	Matched   bool
	SearchURL string
}

// ResolvedFile groups resolved diagnostics per source file, in report
// order.
type ResolvedFile struct {
	Path     string
	Language string
	Entries  []Resolved
}

// ResolvedReport is the fully explained form of a report.
type ResolvedReport struct {
	Files []ResolvedFile
}

// Total returns the number of resolved diagnostics across all files.
func (r *ResolvedReport) Total() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Entries)
	}
	return total
}

// ResolveOptions controls how a report is resolved.
type ResolveOptions struct {
	// Jobs caps concurrent resolutions; <=0 means GOMAXPROCS.
	Jobs int
	// MinSeverity drops diagnostics below the threshold before any
	// resolution work happens. Severity policy is the caller's call,
	// the resolver itself never filters.
	MinSeverity diag.Severity
}

// ResolveReport explains every diagnostic in rep that passes the
// severity threshold. Resolution runs in parallel, but each diagnostic
// writes into its own preallocated slot, so the output order is the
// report order regardless of scheduling.
func ResolveReport(ctx context.Context, rep *report.Report, resolver *explain.Resolver, opts ResolveOptions) (*ResolvedReport, error) {
	out := &ResolvedReport{Files: make([]ResolvedFile, 0, len(rep.Files))}
	for _, file := range rep.Files {
		kept := diag.FilterMin(file.Diagnostics, opts.MinSeverity)
		out.Files = append(out.Files, ResolvedFile{
			Path:     file.Path,
			Language: file.Language,
			Entries:  make([]Resolved, len(kept)),
		})
		for i, d := range kept {
			out.Files[len(out.Files)-1].Entries[i].Diagnostic = d
		}
	}

	total := out.Total()
	if total == 0 {
		return out, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, total))

	for fi := range out.Files {
		language := out.Files[fi].Language
		for ei := range out.Files[fi].Entries {
			entry := &out.Files[fi].Entries[ei]
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				// Слот принадлежит только этой горутине, мьютекс не нужен.
				text, matched := resolver.Resolve(entry.Diagnostic.Message, language)
				entry.Explanation = text
				entry.Matched = matched
				entry.SearchURL = explain.SearchURL(language, entry.Diagnostic.Message)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
