package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/WanderingWalnut/Grantly/common/llm"
	"github.com/WanderingWalnut/Grantly/internal/drafter"
	"github.com/WanderingWalnut/Grantly/internal/service"
)

func draftCmd(load ConfigLoader) *cobra.Command {
	var (
		pdfURL  string
		summary string
		out     string
		title   string
	)

	c := &cobra.Command{
		Use:   "draft",
		Short: "Draft answers for an application PDF and print them as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			var client llm.Client
			if cfg.DraftLLM.Enabled() {
				client, err = llm.New(llm.Config{
					APIKey:  cfg.DraftLLM.APIKey,
					BaseURL: cfg.DraftLLM.BaseURL,
					Model:   cfg.DraftLLM.Model,
					Timeout: cfg.DraftLLM.Timeout,
				})
				if err != nil {
					return fmt.Errorf("creating draft llm client: %w", err)
				}
			}

			d := drafter.New(client, drafter.NewPDFExtractor(), drafter.Config{
				MaxTokens: cfg.DraftLLM.MaxTokens,
				Timeout:   cfg.Locator.Timeout,
			})

			draft, err := service.NewDraftService(d, nil).Generate(cmd.Context(), service.DraftParams{
				PDFURL:              pdfURL,
				OrganizationSummary: summary,
			})
			if err != nil {
				return err
			}

			if out != "" {
				if !strings.HasSuffix(strings.ToLower(out), ".docx") {
					return fmt.Errorf("--out must name a .docx file")
				}
				if err := drafter.WriteDocx(out, title, draft); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "draft written to %s\n", out)
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(draft)
		},
	}

	c.Flags().StringVar(&pdfURL, "pdf-url", "", "Application PDF to draft answers for (required)")
	c.Flags().StringVar(&summary, "summary", "", "Free-text organization summary (required)")
	c.Flags().StringVar(&out, "out", "", "Write the draft to this .docx file instead of stdout")
	c.Flags().StringVar(&title, "title", "Grant application draft", "Document title for --out")

	_ = c.MarkFlagRequired("pdf-url")
	_ = c.MarkFlagRequired("summary")
	return c
}
