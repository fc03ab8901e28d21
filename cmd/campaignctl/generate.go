package main

import (
	"encoding/json"
	"fmt"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/a2a"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/app"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		brief   models.Brief
		asJSON  bool
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one brief through the full campaign pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			c, err := application.Service.Generate(cmd.Context(), brief)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			_, err = fmt.Fprintf(out, "%s\n\nCampaign ID: %s\n", a2a.FormatCampaign(c, baseURL), c.ID)
			return err
		},
	}

	cmd.Flags().StringVarP(&brief.Product, "product", "p", "", "product details")
	cmd.Flags().StringVarP(&brief.Audience, "audience", "a", "", "target audience")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the campaign record as JSON")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "prefix for relative media links")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("audience")
	return cmd
}
