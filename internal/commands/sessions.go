package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/parser"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and correct recorded sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "ls [member-id] [date]",
	Short: "List a member's sessions for a date",
	Args:  cobra.RangeArgs(1, 2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}
		date, err := reportDateArg(a, args, 1)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sum, err := a.mgr.DaySummary(memberID, date, namespaceFlag(cmd), a.clk.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(sum.Entries) == 0 {
			fmt.Printf("%s %s: no sessions.\n", a.cfg.MemberName(memberID), date)
			return
		}

		fmt.Printf("%s %s (total %d min)\n", a.cfg.MemberName(memberID), date, sum.Total)
		for i, e := range sum.Entries {
			if e.Ongoing {
				fmt.Printf("%d. %s - ... (%d min, active)\n", i+1, e.Start, e.Minutes)
			} else {
				fmt.Printf("%d. %s - %s (%d min)\n", i+1, e.Start, e.End, e.Minutes)
			}
		}
	}),
}

var sessionsCloseCmd = &cobra.Command{
	Use:   "close [member-id] [start] [end] [date]",
	Short: "Close the session starting at the given time",
	Long: `Close exactly the session that started at the given time. The safe way to
finalize a session when more than one exists for the day.`,
	Args: cobra.RangeArgs(3, 4),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}
		start, err := parser.ParseTimeOfDay(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		end, err := parser.ParseTimeOfDay(args[2])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		date, err := reportDateArg(a, args, 3)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		closed, err := a.mgr.Close(memberID, date, end, namespaceFlag(cmd), start)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Closed %s - %s (%d min) for %s on %s\n",
			closed.Start, closed.End, closed.Minutes, a.cfg.MemberName(memberID), date)
	}),
}

var sessionsRemoveCmd = &cobra.Command{
	Use:   "rm [member-id] [start] [date]",
	Short: "Delete the session starting at the given time",
	Args:  cobra.RangeArgs(2, 3),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}
		start, err := parser.ParseTimeOfDay(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		date, err := reportDateArg(a, args, 2)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := a.mgr.Delete(memberID, date, start, namespaceFlag(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Removed session %s for %s on %s\n", start, a.cfg.MemberName(memberID), date)
	}),
}

var sessionsAddMinutesCmd = &cobra.Command{
	Use:   "add-minutes [member-id] [minutes] [date]",
	Short: "Credit minutes as a synthesized completed session",
	Long: `Insert an already-closed session worth the given minutes. The start time is
the first free second from 00:00:00 that day, so repeated credits never
collide; the end is clamped to 23:59:59.`,
	Args: cobra.RangeArgs(2, 3),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}
		minutes, err := strconv.ParseFloat(args[1], 64)
		if err != nil || minutes <= 0 {
			fmt.Printf("Error: invalid minutes '%s' (must be a positive number)\n", args[1])
			return
		}
		date, err := reportDateArg(a, args, 2)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		added, err := a.mgr.AddCompleted(memberID, date, minutes, namespaceFlag(cmd))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("New session %s -> %s (%.0fm) for %s on %s\n",
			added.Start, added.End, minutes, a.cfg.MemberName(memberID), date)
	}),
}

// reportDateArg resolves the optional trailing date argument, defaulting to
// today.
func reportDateArg(a *app, args []string, idx int) (string, error) {
	input := ""
	if len(args) > idx {
		input = args[idx]
	}
	return parser.ParseReportDate(input, a.clk.Now())
}

func init() {
	for _, c := range []*cobra.Command{sessionsListCmd, sessionsCloseCmd, sessionsRemoveCmd, sessionsAddMinutesCmd} {
		c.Flags().Bool("sas", false, "Use the SAS attendance track")
		sessionsCmd.AddCommand(c)
	}
}
