package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/db"
	"github.com/ciprianm/pontaj/internal/models"
)

var warnCmd = &cobra.Command{
	Use:   "warn",
	Short: "Manage disciplinary warnings",
}

var warnAddCmd = &cobra.Command{
	Use:   "add [member-id]",
	Short: "Add one warning to a member",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}

		count, err := a.warns.Increment(memberID)
		if errors.Is(err, db.ErrWarnLimit) {
			fmt.Printf("%s already has %d/%d warnings. Only a reset can clear them.\n",
				a.cfg.MemberName(memberID), count, models.WarnLimit)
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		a.trail.Record("WARN", "uid=%d count=%d/%d", memberID, count, models.WarnLimit)
		fmt.Printf("Warned %s: %d/%d\n", a.cfg.MemberName(memberID), count, models.WarnLimit)
		if count == models.WarnLimit {
			a.trail.Record("WARN", "LIMIT_REACHED uid=%d, escalating for review", memberID)
			fmt.Println("Warning limit reached. Escalate to staff for review.")
		}
	}),
}

var warnStatusCmd = &cobra.Command{
	Use:   "status [member-id]",
	Short: "Show a member's warning count",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}

		count, err := a.warns.Count(memberID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("%s: %d/%d warnings\n", a.cfg.MemberName(memberID), count, models.WarnLimit)
	}),
}

var warnResetCmd = &cobra.Command{
	Use:   "reset [member-id]",
	Short: "Reset a member's warnings to zero",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}

		if err := a.warns.Reset(memberID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		a.trail.Record("WARN", "RESET uid=%d", memberID)
		fmt.Printf("Warnings reset for %s\n", a.cfg.MemberName(memberID))
	}),
}

func init() {
	warnCmd.AddCommand(warnAddCmd)
	warnCmd.AddCommand(warnStatusCmd)
	warnCmd.AddCommand(warnResetCmd)
}
