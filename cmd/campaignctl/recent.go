package main

import (
	"fmt"
	"io"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/store"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recently saved campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg, err := config.LoadDB()
			if err != nil {
				return err
			}
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := store.New(cmd.Context(), *dbCfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			campaigns, err := db.RecentCampaigns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(campaigns) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No campaigns saved yet.")
				return err
			}
			renderCampaigns(cmd.OutOrStdout(), campaigns)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultRecentLimit, "number of campaigns to show")
	return cmd
}

func renderCampaigns(w io.Writer, campaigns []models.Campaign) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Created", "Product", "Audience", "Image", "Audio"})

	for _, c := range campaigns {
		table.Append([]string{
			c.ID,
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(c.Product, 40),
			truncate(c.Audience, 40),
			mediaState(c.ImageURL != "" && !c.ImagePlaceholder),
			mediaState(c.AudioURL != ""),
		})
	}
	table.Render()
}

func mediaState(ok bool) string {
	if ok {
		return "yes"
	}
	return "-"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
