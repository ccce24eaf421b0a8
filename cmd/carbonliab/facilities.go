package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/spf13/cobra"
)

var (
	facilityType string
	facilityRisk string
	facilityTop  int
)

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "List refinery facilities, optionally filtered by ownership and risk",
	Long: `List the facility registry in registry order.

Examples:
  carbonliab facilities --type PSU --risk B
  carbonliab facilities --top 5 -f json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := registry.Query{}
		if facilityType != "" {
			o := domain.Ownership(facilityType)
			if o != domain.OwnershipPSU && o != domain.OwnershipPrivate {
				return fmt.Errorf("invalid facility type %q (use PSU or Private)", facilityType)
			}
			q.Ownership = o
		}
		if facilityRisk != "" {
			g := domain.RiskGrade(facilityRisk)
			switch g {
			case domain.RiskAAA, domain.RiskA, domain.RiskBBB, domain.RiskBB, domain.RiskB:
			default:
				return fmt.Errorf("invalid risk grade %q (use AAA, A, BBB, BB or B)", facilityRisk)
			}
			q.Risk = g
		}

		var list []domain.FacilityRecord
		if facilityTop > 0 {
			for _, f := range registry.TopByLiability(registry.Len()) {
				if len(list) == facilityTop {
					break
				}
				if (q.Ownership == "" || f.Ownership == q.Ownership) && (q.Risk == "" || f.Risk == q.Risk) {
					list = append(list, f)
				}
			}
		} else {
			list = registry.Filter(q)
		}

		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			return writeJSON(out, struct {
				Facilities any `json:"facilities"`
				Count      int `json:"count"`
			}{list, len(list)})
		case "console", "text":
			fmt.Fprintf(out, "%-16s %-6s %-8s %8s %5s %9s %-4s %s\n", "Name", "Op", "Type", "MMTPA", "Age", "Liab $B", "Risk", "State")
			fmt.Fprintln(out, strings.Repeat("-", 76))
			for _, f := range list {
				fmt.Fprintf(out, "%-16s %-6s %-8s %8s %5d %9s %-4s %s\n",
					f.Name, f.Operator, f.Ownership, f.Capacity.StringFixed(2), f.Age, f.Liability.StringFixed(2), f.Risk, f.State)
			}
			fmt.Fprintf(out, "\n%d facilities\n", len(list))
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
	},
}

func init() {
	facilitiesCmd.Flags().StringVar(&facilityType, "type", "", "Ownership filter: PSU or Private")
	facilitiesCmd.Flags().StringVar(&facilityRisk, "risk", "", "Risk grade filter: AAA, A, BBB, BB or B")
	facilitiesCmd.Flags().IntVar(&facilityTop, "top", 0, "Show only the N highest-liability matches")
	rootCmd.AddCommand(facilitiesCmd)
}
