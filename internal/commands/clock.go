package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/clock"
	"github.com/ciprianm/pontaj/internal/timesheet"
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Clock a member in or out",
}

var clockInCmd = &cobra.Command{
	Use:   "in [member-id]",
	Short: "Open a session for a member at the current time",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}

		now := a.clk.Now()
		if !timesheet.ClockInAllowed(now) {
			fmt.Println("Clock-in is closed after 23:55. Try again after 00:00.")
			return
		}

		ns := namespaceFlag(cmd)
		err = a.mgr.Open(memberID, clock.DateString(now), clock.TimeString(now), ns)
		if errors.Is(err, timesheet.ErrAlreadyOpen) {
			fmt.Printf("Already clocked in: %v. Clock out first.\n", err)
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Clock IN %s at %s (%s)\n", a.cfg.MemberName(memberID), clock.TimeString(now), clock.DateString(now))
	}),
}

var clockOutCmd = &cobra.Command{
	Use:   "out [member-id]",
	Short: "Close the member's open session at the current time",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}

		now := a.clk.Now()
		ns := namespaceFlag(cmd)
		closed, err := a.mgr.Close(memberID, clock.DateString(now), clock.TimeString(now), ns, "")
		if errors.Is(err, timesheet.ErrNoOpenSession) {
			fmt.Println("No open session for this member today.")
			return
		}
		if errors.Is(err, timesheet.ErrMultipleOpen) {
			fmt.Printf("Error: %v. Close by start time with 'pontaj sessions close'.\n", err)
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Clock OUT %s at %s\nDuration: %d minutes\n", a.cfg.MemberName(memberID), closed.End, closed.Minutes)
	}),
}

var clockStatusCmd = &cobra.Command{
	Use:   "status [member-id]",
	Short: "Show whether the member has an open session today",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		memberID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid member id '%s'\n", args[0])
			return
		}

		now := a.clk.Now()
		ns := namespaceFlag(cmd)
		start, err := a.mgr.OpenFor(memberID, clock.DateString(now), ns)
		if errors.Is(err, timesheet.ErrNoOpenSession) {
			fmt.Println("No open session.")
			return
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		startAt, err := clock.ParseLocal(clock.DateString(now), start, a.clk.Location())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Open since %s (%d minutes so far)\n",
			start, timesheet.RoundMinutes(timesheet.MinutesBetween(startAt, now)))
	}),
}

func init() {
	for _, c := range []*cobra.Command{clockInCmd, clockOutCmd, clockStatusCmd} {
		c.Flags().Bool("sas", false, "Use the SAS attendance track")
		clockCmd.AddCommand(c)
	}
}
