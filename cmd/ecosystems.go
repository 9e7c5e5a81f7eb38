package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/devmole/internal/ecosystem"
	"github.com/lakshaymaurya-felt/devmole/internal/ui"
)

var ecosystemsCmd = &cobra.Command{
	Use:   "ecosystems",
	Short: "List supported ecosystems and their availability",
	Long: `List all supported ecosystems with their marker files, cleanup
strategy, and whether the required tool is available on this machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		specs := ecosystem.Defaults()
		usable := make(map[string]bool)
		for _, s := range ecosystem.Available(context.Background(), specs) {
			usable[s.ID] = true
		}

		fmt.Println(ui.Title.Render("  Supported ecosystems"))
		fmt.Println()
		for _, s := range specs {
			status := ui.Good.Render("available")
			if !usable[s.ID] {
				status = ui.Bad.Render("tool missing")
			}

			var action string
			switch s.Strategy {
			case ecosystem.StrategyRunClean:
				action = "runs `" + strings.Join(s.CleanArgs, " ") + "`"
			case ecosystem.StrategyDeletePaths:
				action = "removes " + strings.Join(s.RemovePaths, ", ")
			}

			fmt.Printf("  %-10s %s\n", ui.Accent.Render(s.ID), status)
			fmt.Println("    " + ui.Muted.Render("markers: "+strings.Join(s.Markers, ", ")))
			fmt.Println("    " + ui.Muted.Render(action))
		}
		return nil
	},
}
