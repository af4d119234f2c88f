package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/tui"
)

var ongoingCmd = &cobra.Command{
	Use:   "ongoing",
	Short: "Live view of every open session",
	Long:  "Interactive table of open sessions on both tracks, refreshed every second.",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := tui.RunOngoingTUI(a.store, a.clk, a.clk.Location(), a.cfg.MemberName); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
