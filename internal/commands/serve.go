package commands

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/delivery"
	"github.com/ciprianm/pontaj/internal/eod"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the end-of-day reconciliation scheduler",
	Long: `Run the once-per-minute reconciliation loop. At 05:25 overnight sessions and
at 23:55 all remaining open sessions of the day are swept into confirmation
requests; unconfirmed sessions are discarded when the window expires.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		trail := a.trail
		if a.cfg.AuditWebhookURL != "" {
			hook := delivery.NewWebhook(a.cfg.AuditWebhookURL)
			trail.SetForward(func(text string) {
				if _, err := hook.SendFallback(text); err != nil {
					log.Printf("audit forward failed: %v", err)
				}
			})
		}

		dispatch := delivery.NewWebhook(a.cfg.FallbackWebhookURL)
		window := time.Duration(a.cfg.ConfirmWindowSeconds) * time.Second
		confirmer := eod.NewConfirmer(a.mgr, dispatch, trail, window, a.clk.Location())
		scheduler := eod.NewScheduler(a.clk, a.store, confirmer, trail)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println("pontaj scheduler running. Ctrl+C to stop.")
		if err := scheduler.Run(ctx); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
