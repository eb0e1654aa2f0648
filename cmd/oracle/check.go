package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"oracle/internal/diag"
	"oracle/internal/driver"
	"oracle/internal/explain"
	"oracle/internal/explainfmt"
	"oracle/internal/observ"
	"oracle/internal/report"
	"oracle/internal/rulepack"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <report.json>",
	Short: "Explain every diagnostic in a tool report",
	Long:  `Check reads a diagnostics report produced by a compiler or linter wrapper and prints an explanation for each entry`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("packs", "", "directory with additional rule packs")
	checkCmd.Flags().Bool("pack-cache", false, "cache compiled rule packs on disk")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("min-severity", "hint", "drop diagnostics below this severity (error|warning|info|hint)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for resolution (0=auto)")
	checkCmd.Flags().String("ui", "off", "interactive browser (auto|on|off)")
	checkCmd.Flags().String("fail-on", "error", "exit with code 1 when a diagnostic at or above this severity is present")
}

func runCheck(cmd *cobra.Command, args []string) error {
	reportPath := args[0]

	packsDir, err := cmd.Flags().GetString("packs")
	if err != nil {
		return fmt.Errorf("failed to get packs flag: %w", err)
	}
	packCache, err := cmd.Flags().GetBool("pack-cache")
	if err != nil {
		return fmt.Errorf("failed to get pack-cache flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	minSeverityValue, err := cmd.Flags().GetString("min-severity")
	if err != nil {
		return fmt.Errorf("failed to get min-severity flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	failOnValue, err := cmd.Flags().GetString("fail-on")
	if err != nil {
		return fmt.Errorf("failed to get fail-on flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	switch format {
	case "pretty", "json", "short":
		// supported
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	minSeverity, err := diag.ParseSeverity(minSeverityValue)
	if err != nil {
		return fmt.Errorf("invalid --min-severity: %w", err)
	}
	failOn, err := diag.ParseSeverity(failOnValue)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	timer := observ.NewTimer()

	endLoad := timer.Begin("load packs")
	var cache *rulepack.DiskCache
	if packCache {
		cache, err = rulepack.OpenDiskCache("oracle")
		if err != nil {
			return fmt.Errorf("failed to open pack cache: %w", err)
		}
	}
	table, err := loadTable(packsDir, cache)
	if err != nil {
		return err
	}
	resolver := explain.NewResolver(table)
	endLoad(fmt.Sprintf("%d rules", table.Len()))

	endRead := timer.Begin("read report")
	rep, err := report.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	endRead(fmt.Sprintf("%d diagnostics", rep.Total()))

	// Код выхода считается по сырому отчёту: --min-severity влияет
	// только на то, что показывается, а не на вердикт.
	failCount := rep.CountMin(failOn)

	opts := driver.ResolveOptions{Jobs: jobs, MinSeverity: minSeverity}

	if uiModeValue.enabled() {
		endResolve := timer.Begin("resolve")
		res, err := runCheckWithUI(cmd.Context(), filepath.Base(reportPath), rep, resolver, opts)
		if err != nil {
			return err
		}
		endResolve(fmt.Sprintf("%d explained", res.Total()))
	} else {
		endResolve := timer.Begin("resolve")
		res, err := driver.ResolveReport(cmd.Context(), rep, resolver, opts)
		if err != nil {
			return err
		}
		endResolve(fmt.Sprintf("%d explained", res.Total()))

		endRender := timer.Begin("render")
		useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
		switch format {
		case "pretty":
			explainfmt.Pretty(os.Stdout, res, explainfmt.Options{Color: useColor})
			if !quiet {
				matched := 0
				for _, file := range res.Files {
					for _, entry := range file.Entries {
						if entry.Matched {
							matched++
						}
					}
				}
				fmt.Fprintf(os.Stdout, "\n%d diagnostics, %d explained by rules\n", res.Total(), matched)
			}
		case "json":
			if err := explainfmt.JSON(os.Stdout, res); err != nil {
				return fmt.Errorf("failed to format explanations: %w", err)
			}
		case "short":
			explainfmt.Short(os.Stdout, res)
		}
		endRender("")
	}

	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if failCount > 0 {
		// Suppress cobra usage output, the report already went to stdout
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
