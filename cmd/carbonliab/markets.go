package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/carbonliab/internal/registry"
	"github.com/spf13/cobra"
)

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "Show reference carbon market prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		markets := registry.MarketPrices()
		out := cmd.OutOrStdout()
		switch outputFormat {
		case "json":
			return writeJSON(out, markets)
		case "console", "text":
			fmt.Fprintf(out, "%-14s %-9s %s\n", "Market", "Region", "Price")
			fmt.Fprintln(out, strings.Repeat("-", 34))
			for _, m := range markets {
				fmt.Fprintf(out, "%-14s %-9s %s%s/t\n", m.Market, m.Region, m.Currency, m.Price.StringFixed(1))
			}
			return nil
		default:
			return fmt.Errorf("unsupported format %q (use console or json)", outputFormat)
		}
	},
}

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Define the terms used in reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := registry.Glossary()
		out := cmd.OutOrStdout()
		if outputFormat == "json" {
			return writeJSON(out, entries)
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%-17s %s\n", e.Term, e.Definition)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marketsCmd)
	rootCmd.AddCommand(glossaryCmd)
}
