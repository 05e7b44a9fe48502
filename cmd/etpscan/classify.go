package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/etpscan/internal/classifier"
	"github.com/Veraticus/etpscan/internal/cli"
	"github.com/Veraticus/etpscan/internal/model"
)

type classifyResult struct {
	Name string `json:"name"`
	model.Verdict
}

func classifyCmd() *cobra.Command {
	var (
		fund      bool
		testIssue bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "classify [NAME...]",
		Short: "Classify security names without fetching the listing",
		Long: `Classify one or more security names with the built-in rules.
Names are read from stdin, one per line, when none are given.`,
		Example: `  etpscan classify --fund "ProShares UltraPro QQQ"
  cut -d'|' -f3 nasdaqtraded.txt | etpscan classify --fund --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						names = append(names, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read names: %w", err)
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no names to classify")
			}

			flags := model.Flags{IsFundFlagged: fund, IsTestIssue: testIssue}
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				for _, name := range names {
					if err := enc.Encode(classifyResult{Name: name, Verdict: classifier.Classify(name, flags)}); err != nil {
						return fmt.Errorf("failed to write verdict: %w", err)
					}
				}
				return nil
			}

			for _, name := range names {
				fmt.Fprintln(out, cli.RenderVerdict(name, classifier.Classify(name, flags)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fund, "fund", false, "treat the names as flagged ETF=Y")
	cmd.Flags().BoolVar(&testIssue, "test-issue", false, "treat the names as test issues")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON verdict per line")

	return cmd
}
