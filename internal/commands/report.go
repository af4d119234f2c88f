package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ciprianm/pontaj/internal/activity"
	"github.com/ciprianm/pontaj/internal/report"
)

var (
	reportTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	reportMemberStyle = lipgloss.NewStyle().Bold(true)
	reportDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var reportCmd = &cobra.Command{
	Use:   "report [date]",
	Short: "Daily attendance report over the roster",
	Long: `Build the rounded-minutes report for a date (default today). With --member
the report shows that member's session detail; otherwise one total line per
roster member with billable time.`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		date, err := reportDateArg(a, args, 0)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		members := make([]report.Member, 0, len(a.cfg.Roster))
		if raw, _ := cmd.Flags().GetString("member"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fmt.Printf("Error: invalid member id '%s'\n", raw)
				return
			}
			members = append(members, report.Member{ID: id, Name: a.cfg.MemberName(id)})
		} else {
			for _, m := range a.cfg.Roster {
				members = append(members, report.Member{ID: m.ID, Name: m.Name})
			}
		}
		if len(members) == 0 {
			fmt.Println("No roster configured. Add members to the config file or pass --member.")
			return
		}

		ns := namespaceFlag(cmd)
		day, err := report.BuildDay(a.mgr, date, members, ns, a.clk.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Println(reportTitleStyle.Render(fmt.Sprintf("Report %s (%s)", day.Date, ns)))
		if len(day.Members) == 0 {
			fmt.Println("No data.")
			return
		}
		detailed := len(members) == 1
		for _, md := range day.Members {
			fmt.Println(reportMemberStyle.Render(fmt.Sprintf("%s: %d min", md.Member.Name, md.Total)))
			if !detailed {
				continue
			}
			for i, e := range md.Entries {
				line := fmt.Sprintf("  %d. %s - %s (%d min)", i+1, e.Start, e.End, e.Minutes)
				if e.Ongoing {
					line = fmt.Sprintf("  %d. %s - ... (%d min, active)", i+1, e.Start, e.Minutes)
				}
				fmt.Println(reportDetailStyle.Render(line))
			}
		}

		if send, _ := cmd.Flags().GetBool("send-activity"); send {
			pushActivity(a, day)
		}
	}),
}

// pushActivity posts the callsigns of every member with billable time to the
// activity API. Callsigns come from the roster, or are extracted from the
// member's display name when the roster carries none.
func pushActivity(a *app, day report.Day) {
	client := activity.NewClient(a.cfg.Activity.URL, a.cfg.Activity.Token, a.cfg.Activity.Sheet)
	if !client.Enabled() {
		fmt.Println("Activity API is not configured.")
		return
	}

	var callsigns []string
	for _, md := range day.Members {
		cs := a.cfg.MemberCallsign(md.Member.ID)
		if cs == "" {
			cs = activity.ExtractCallsign(md.Member.Name)
		}
		if cs != "" {
			callsigns = append(callsigns, cs)
		}
	}
	if len(callsigns) == 0 {
		fmt.Println("No callsigns to report.")
		return
	}

	if _, err := client.SendCallsigns(callsigns); err != nil {
		fmt.Printf("Activity API error: %v\n", err)
		return
	}
	fmt.Printf("Reported %d callsign(s) to the activity sheet.\n", len(callsigns))
}

func init() {
	reportCmd.Flags().String("member", "", "Restrict the report to one member id")
	reportCmd.Flags().Bool("sas", false, "Use the SAS attendance track")
	reportCmd.Flags().Bool("send-activity", false, "Post reported callsigns to the activity API")
}
