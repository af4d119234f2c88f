package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/audit"
	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/config"
	"github.com/ciprianm/pontaj/internal/db"
	"github.com/ciprianm/pontaj/internal/models"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pontaj",
	Short: "Shift time tracking and moderation assistant",
	Long: `pontaj records work shifts for a single roster, reconciles sessions left
open at end of day, and tracks disciplinary warnings. The serve command runs
the reconciliation scheduler; the rest are administrative tools over the
same store.`,
}

// app bundles the services every command needs.
type app struct {
	cfg   config.Config
	clk   *clock.SystemClock
	store *db.SessionStore
	warns *db.WarnStore
	mgr   *timesheet.Manager
	trail *audit.Trail
}

// initApp loads configuration, opens the database and wires the core.
func initApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	clk, err := clock.NewSystemClock(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	if err := db.Initialize(cfg.DatabasePath); err != nil {
		return nil, err
	}
	store := db.NewSessionStore(db.DB)
	return &app{
		cfg:   cfg,
		clk:   clk,
		store: store,
		warns: db.NewWarnStore(db.DB),
		mgr:   timesheet.NewManager(store, clk.Location()),
		trail: audit.New(cfg.AuditLogPath),
	}, nil
}

// withApp wraps a command function to initialize the app first.
func withApp(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := initApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer db.Close()
		fn(a, cmd, args)
	}
}

// namespaceFlag translates the --sas flag into a track.
func namespaceFlag(cmd *cobra.Command) models.Namespace {
	if sas, _ := cmd.Flags().GetBool("sas"); sas {
		return models.NamespaceSAS
	}
	return models.NamespaceRegular
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.pontaj/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(ongoingCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(warnCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pontaj %s (commit %s, built %s)\n", version, commit, date)
	},
}
