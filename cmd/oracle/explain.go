package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"oracle/internal/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] <message...>",
	Short: "Explain a single compiler or linter message",
	Long:  `Explain resolves one diagnostic message against the rule table and prints a plain-language explanation`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExplain,
}

type explainPayload struct {
	Language    string `json:"language"`
	Message     string `json:"message"`
	Explanation string `json:"explanation"`
	Matched     bool   `json:"matched"`
	SearchURL   string `json:"search_url,omitempty"`
}

func init() {
	explainCmd.Flags().String("language", "", "language identifier of the tool that produced the message")
	explainCmd.Flags().String("packs", "", "directory with additional rule packs")
	explainCmd.Flags().Bool("json", false, "output as JSON")
	explainCmd.Flags().Bool("search", false, "also print a web search URL for the message")
}

func runExplain(cmd *cobra.Command, args []string) error {
	language, err := cmd.Flags().GetString("language")
	if err != nil {
		return fmt.Errorf("failed to get language flag: %w", err)
	}
	packsDir, err := cmd.Flags().GetString("packs")
	if err != nil {
		return fmt.Errorf("failed to get packs flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	withSearch, err := cmd.Flags().GetBool("search")
	if err != nil {
		return fmt.Errorf("failed to get search flag: %w", err)
	}

	if language == "" {
		return fmt.Errorf("--language is required: rules match per language, not globally")
	}

	table, err := loadTable(packsDir, nil)
	if err != nil {
		return err
	}
	resolver := explain.NewResolver(table)

	// Сообщение может прийти разбитым на аргументы шелла.
	message := strings.Join(args, " ")
	explanation, matched := resolver.Resolve(message, language)

	out := cmd.OutOrStdout()
	if asJSON {
		payload := explainPayload{
			Language:    language,
			Message:     message,
			Explanation: explanation,
			Matched:     matched,
		}
		if withSearch {
			payload.SearchURL = explain.SearchURL(language, message)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	fmt.Fprintln(out, explanation)
	if withSearch {
		fmt.Fprintf(out, "\nsearch: %s\n", explain.SearchURL(language, message))
	}
	// Отсутствие правила не считается ошибкой: fallback уже напечатан.
	return nil
}
