package main

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/api/dto"
	"context"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe infrastructure and media providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(config.Cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			cmd.Println(renderHealthTable(app.Health.Refresh(ctx)))
			return nil
		},
	}
}

func renderHealthTable(h *dto.HealthDTO) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Kind", "Name", "Status"})

	for _, name := range sortedKeys(h.Components) {
		tw.AppendRow(table.Row{"component", name, statusText(h.Components[name])})
	}
	for _, name := range sortedKeys(h.Media) {
		tw.AppendRow(table.Row{"media", name, statusText(h.Media[name])})
	}

	tw.AppendFooter(table.Row{"", "overall", statusText(h.Healthy)})
	return tw.Render()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func statusText(ok bool) string {
	if ok {
		return "ok"
	}
	return "down"
}
