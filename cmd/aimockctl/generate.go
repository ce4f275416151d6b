package main

import (
	"github.com/spf13/cobra"

	"github.com/aimock/aimock-api/internal/domain"
	"github.com/aimock/aimock-api/internal/platform/gemini"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		input  domain.InterviewInput
		count  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate interview questions with the configured model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := input.Validate(); err != nil {
				return err
			}

			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("count") {
				cfg.Interview.QuestionCount = count
			}

			log := root.logger(cmd.ErrOrStderr())
			generator, err := gemini.NewGatedGenerator(cmd.Context(), log, cfg.LLM, cfg.Interview, nil)
			if err != nil {
				return err
			}

			records, err := generator.GenerateQuestions(cmd.Context(), input)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&input.Position, "position", "", "job position")
	f.StringVar(&input.Description, "description", "", "job description")
	f.IntVar(&input.Experience, "experience", 0, "years of experience")
	f.StringVar(&input.TechStack, "tech-stack", "", "comma separated tech stack")
	f.IntVar(&count, "count", 0, "number of questions (default from config)")
	f.BoolVar(&asJSON, "json", false, "print records as a JSON array")
	for _, name := range []string{"position", "description", "experience", "tech-stack"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
