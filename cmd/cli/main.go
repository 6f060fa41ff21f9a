package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fintrack/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fintrack-cli",
		Short: "FinTrack CLI tool",
		Long:  `A command line interface for interacting with the FinTrack API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinTrack API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated deployments")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	accountsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	}

	accountsCmd.AddCommand(accountsListCmd)
	rootCmd.AddCommand(accountsCmd)

	// Reconciliation commands
	reconcileCmd := &cobra.Command{
		Use:   "reconcile [account-id]",
		Short: "Verify cached balances against transaction sums",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				reconcileAccount(args[0])
				return
			}
			reconcileAll()
		},
	}
	rootCmd.AddCommand(reconcileCmd)

	// Analytics commands
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income/expense totals and breakdowns",
		Run: func(cmd *cobra.Command, args []string) {
			showSummary()
		},
	}
	rootCmd.AddCommand(summaryCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}

	var databaseURL, migrationsPath string
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrations(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Migration failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations applied")
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if err := postgres.RunMigrationsDown(databaseURL, migrationsPath); err != nil {
				fmt.Printf("Rollback failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Migrations rolled back")
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func apiGet(path string) []byte {
	return apiRequest(http.MethodGet, path)
}

func apiPost(path string) []byte {
	return apiRequest(http.MethodPost, path)
}

func apiRequest(method, path string) []byte {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func listAccounts() {
	body := apiGet("/api/v1/accounts")

	var result struct {
		Accounts []struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Currency string `json:"currency"`
			Balance  string `json:"balance"`
		} `json:"accounts"`
		Total int64 `json:"total"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-28s %-20s %-4s %15s\n", "ID", "NAME", "CUR", "BALANCE")
	for _, a := range result.Accounts {
		fmt.Printf("%-28s %-20s %-4s %15s\n", a.ID, truncate(a.Name, 20), a.Currency, a.Balance)
	}
	fmt.Printf("Total: %d\n", result.Total)
}

func reconcileAccount(accountID string) {
	body := apiPost("/api/v1/accounts/" + accountID + "/reconcile")
	printReconciliation(body)
}

func reconcileAll() {
	body := apiPost("/api/v1/reconcile")

	var results []map[string]any
	if err := json.Unmarshal(body, &results); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	mismatches := 0
	for _, r := range results {
		if reconciled, ok := r["is_reconciled"].(bool); ok && !reconciled {
			mismatches++
			printJSON(r)
		}
	}

	if mismatches == 0 {
		fmt.Printf("All %d accounts reconciled\n", len(results))
		return
	}
	fmt.Printf("%d of %d accounts have drifted balances\n", mismatches, len(results))
	os.Exit(1)
}

func printReconciliation(body []byte) {
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)

	if reconciled, ok := result["is_reconciled"].(bool); ok && !reconciled {
		fmt.Println("Balance check FAILED")
		os.Exit(1)
	}
	fmt.Println("Balance check PASSED")
}

func showSummary() {
	body := apiGet("/api/v1/analytics/summary")

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
