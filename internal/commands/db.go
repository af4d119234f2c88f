package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/db"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database file size and free pages",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		stats, err := db.FileStats(db.DB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("size=%dB free=%dB page_size=%d\n", stats.SizeBytes, stats.FreeBytes, stats.PageSize)
	}),
}

var dbMaintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Checkpoint the WAL and vacuum the database",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := db.Maintain(db.DB); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("Database checkpointed and vacuumed.")
	}),
}

func init() {
	dbCmd.AddCommand(dbStatsCmd)
	dbCmd.AddCommand(dbMaintainCmd)
}
