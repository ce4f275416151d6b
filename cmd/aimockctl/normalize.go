package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/normalize"
)

func newNormalizeCmd(root *rootOptions) *cobra.Command {
	var (
		threshold int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Recover question records from raw model output",
		Long: `Runs the response normalizer over a file, or stdin when no file is given,
and prints the recovered question/answer records.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			nz := normalize.New(
				normalize.WithLogger(root.logger(cmd.ErrOrStderr())),
				normalize.WithSalvageThreshold(threshold))
			res, err := nz.NormalizeResult(cmd.Context(), raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res.Records)
			}
			if root.verbose {
				fmt.Fprintf(out, "stage: %s\n", res.Stage)
			}
			renderRecords(out, res.Records)
			return nil
		},
	}
	cmd.Flags().IntVar(&threshold, "salvage-threshold", normalize.DefaultSalvageThreshold,
		"minimum objects the salvage stage must recover")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as a JSON array")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}

func renderRecords(w io.Writer, records []domain.QARecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Question", "Answer"})
	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.Question, r.Answer})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d records", len(records)), ""})
	t.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
