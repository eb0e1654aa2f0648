package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"oracle/internal/rulepack"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate explanation rule packs",
}

var rulesListCmd = &cobra.Command{
	Use:   "list [flags]",
	Short: "Print the effective rule table in match order",
	Long:  `List prints every rule of the effective table, builtin rules first, in the order lookups try them`,
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <pack.toml...>",
	Short: "Validate rule pack files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRulesCheck,
}

func init() {
	rulesListCmd.Flags().String("packs", "", "directory with additional rule packs")
	rulesListCmd.Flags().String("language", "", "only show rules for this language")
	rulesListCmd.Flags().Bool("digest", false, "print the table digest instead of the rules")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	packsDir, err := cmd.Flags().GetString("packs")
	if err != nil {
		return fmt.Errorf("failed to get packs flag: %w", err)
	}
	language, err := cmd.Flags().GetString("language")
	if err != nil {
		return fmt.Errorf("failed to get language flag: %w", err)
	}
	digestOnly, err := cmd.Flags().GetBool("digest")
	if err != nil {
		return fmt.Errorf("failed to get digest flag: %w", err)
	}

	table, err := loadTable(packsDir, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if digestOnly {
		fmt.Fprintln(out, rulepack.TableDigest(table))
		return nil
	}

	// Индекс считается по полной таблице, фильтр по языку его не сдвигает:
	// номер правила остаётся его позицией при поиске.
	for i, rule := range table.Rules() {
		if language != "" && rule.Language != language {
			continue
		}
		fmt.Fprintf(out, "%4d  %-12s  %-40s  %s\n",
			i, rule.Language, rule.Pattern.String(), ruleSummary(rule.Explanation))
	}
	return nil
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	invalid := 0
	for _, path := range args {
		// Ошибки загрузки уже начинаются с пути файла.
		if _, err := rulepack.Load(path, nil); err != nil {
			invalid++
			fmt.Fprintf(out, "FAIL %v\n", err)
			continue
		}
		fmt.Fprintf(out, "OK   %s\n", path)
	}
	if invalid > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// ruleSummary возвращает первую строку объяснения для табличного вывода.
func ruleSummary(explanation string) string {
	if i := strings.IndexByte(explanation, '\n'); i >= 0 {
		return explanation[:i]
	}
	return explanation
}
