package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/cloudx-io/rosterauction/validation"
)

func main() {
	var (
		journalPath  = flag.String("journal", "", "Path to a .jsonl.zst auction journal")
		outputFormat = flag.String("format", "text", "Output format: text or json")
		help         = flag.Bool("help", false, "Show usage information")
	)

	flag.Parse()

	if *help {
		showUsage()
		os.Exit(0)
	}

	if *journalPath == "" && flag.NArg() == 1 {
		*journalPath = flag.Arg(0)
	}
	if *journalPath == "" {
		showUsage()
		fmt.Fprintf(os.Stderr, "\nError: --journal is required\n")
		os.Exit(1)
	}

	result, err := validation.ValidateJournalFile(*journalPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(2)
	}

	if *outputFormat == "json" {
		outputJSON(result)
	} else {
		outputText(result)
	}

	if !result.IsValid() {
		os.Exit(1)
	}
	os.Exit(0)
}

func showUsage() {
	fmt.Println("Auction Journal Validator")
	fmt.Println()
	fmt.Println("Replays an auction journal and checks its ledger.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  journal-validator --journal <path> [options]")
	fmt.Println("  journal-validator <path> [options]")
	fmt.Println()
	fmt.Println("Optional Flags:")
	fmt.Println("  --format <text|json>              Output format (default: text)")
	fmt.Println("  --help                            Show this help message")
	fmt.Println()
	fmt.Println("Checks:")
	fmt.Println("  - header lists each organization once with a non-negative budget")
	fmt.Println("  - event sequence numbers are contiguous")
	fmt.Println("  - every recorded budget and total matches the replayed ledger")
	fmt.Println("  - no budget goes negative and no bid exceeds the bidder's budget")
	fmt.Println("  - no entrant is sold twice and RTM is used at most once per organization")
	fmt.Println()
	fmt.Println("Exit Codes:")
	fmt.Println("  0 - Validation passed")
	fmt.Println("  1 - Validation failed")
	fmt.Println("  2 - Invalid input or runtime error")
}

func outputText(result *validation.JournalValidationResult) {
	fmt.Println("Auction Journal Validator")
	fmt.Println("=========================")
	fmt.Println()

	fmt.Println("Summary:")
	fmt.Printf("  Header Valid:            %v\n", result.HeaderValid)
	fmt.Printf("  Sequence Valid:          %v\n", result.SequenceValid)
	fmt.Printf("  Ledger Valid:            %v\n", result.LedgerValid)
	fmt.Printf("  Budgets Valid:           %v\n", result.BudgetsValid)
	fmt.Printf("  Sales Valid:             %v\n", result.SalesValid)
	fmt.Printf("  RTM Valid:               %v\n", result.RTMValid)
	fmt.Printf("  Events:                  %d\n", result.Events)
	fmt.Printf("  Sales:                   %d\n", result.Sales)
	fmt.Printf("  Total Spent:             %s\n", result.TotalSpent)

	if len(result.FinalBudgets) > 0 {
		fmt.Println()
		fmt.Println("Remaining Budgets:")
		for _, code := range slices.Sorted(maps.Keys(result.FinalBudgets)) {
			fmt.Printf("  %-6s %s\n", code, result.FinalBudgets[code])
		}
	}

	fmt.Println()
	fmt.Println("Details:")
	for _, detail := range result.ValidationDetails {
		fmt.Printf("  - %s\n", detail)
	}

	fmt.Println()
	fmt.Println("=========================")
	if result.IsValid() {
		fmt.Println("VALIDATION: ✓ PASSED")
		fmt.Println("Exit Code: 0")
	} else {
		fmt.Println("VALIDATION: ✗ FAILED")
		fmt.Println("Exit Code: 1")
	}
}

func outputJSON(result *validation.JournalValidationResult) {
	budgets := make(map[string]string, len(result.FinalBudgets))
	for code, budget := range result.FinalBudgets {
		budgets[string(code)] = budget.String()
	}
	output := map[string]any{
		"valid":          result.IsValid(),
		"header_valid":   result.HeaderValid,
		"sequence_valid": result.SequenceValid,
		"ledger_valid":   result.LedgerValid,
		"budgets_valid":  result.BudgetsValid,
		"sales_valid":    result.SalesValid,
		"rtm_valid":      result.RTMValid,
		"events":         result.Events,
		"sales":          result.Sales,
		"total_spent":    result.TotalSpent.String(),
		"final_budgets":  budgets,
		"details":        result.ValidationDetails,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(2)
	}
	fmt.Println(string(data))
}
