package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	userID  string
	timeout time.Duration
)

// bcryptGenerate is swapped in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "stash-cli",
		Short: "Stash CLI tool",
		Long:  `A command line interface for interacting with the Stash savings API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Stash API")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "Acting user ID (sent as X-User-ID)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(plansCmd())
	rootCmd.AddCommand(walletCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Run: func(cmd *cobra.Command, args []string) {
			body, status := doGet("/ready")
			if status != http.StatusOK {
				fmt.Printf("Service NOT ready (Status: %d)\nResponse: %s\n", status, body)
				os.Exit(1)
			}
			fmt.Println("Service ready")
		},
	}
}

func plansCmd() *cobra.Command {
	plans := &cobra.Command{
		Use:   "plans",
		Short: "Savings plan operations",
	}

	plans.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the user's savings plans",
		Run: func(cmd *cobra.Command, args []string) {
			body, status := doGet("/api/v1/plans/")
			if status != http.StatusOK {
				fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, body)
				os.Exit(1)
			}

			var resp struct {
				Plans []struct {
					ID            string `json:"id"`
					PlanName      string `json:"plan_name"`
					Status        string `json:"status"`
					Currency      string `json:"currency"`
					CurrentAmount string `json:"current_amount"`
				} `json:"plans"`
			}
			if err := json.Unmarshal([]byte(body), &resp); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("%-28s %-20s %-10s %s\n", "ID", "NAME", "STATUS", "BALANCE")
			for _, p := range resp.Plans {
				fmt.Printf("%-28s %-20s %-10s %s %s\n",
					truncate(p.ID, 28), truncate(p.PlanName, 20), p.Status, p.CurrentAmount, p.Currency)
			}
		},
	})

	plans.AddCommand(&cobra.Command{
		Use:   "get <plan-id>",
		Short: "Show a single plan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, status := doGet("/api/v1/plans/" + args[0])
			if status != http.StatusOK {
				fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, body)
				os.Exit(1)
			}
			printRawJSON(body)
		},
	})

	return plans
}

func walletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallet",
		Short: "Show the user's wallet",
		Run: func(cmd *cobra.Command, args []string) {
			body, status := doGet("/api/v1/wallet")
			if status != http.StatusOK {
				fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, body)
				os.Exit(1)
			}
			printRawJSON(body)
		},
	}
}

func withdrawCmd() *cobra.Command {
	var (
		amount      string
		currency    string
		destination string
		bankAccount string
	)

	cmd := &cobra.Command{
		Use:   "withdraw <plan-id>",
		Short: "Withdraw from a savings plan",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"amount":      amount,
				"currency":    currency,
				"destination": destination,
			}
			if bankAccount != "" {
				payload["bank_account_id"] = bankAccount
			}

			body, status := doPost("/api/v1/plans/"+args[0]+"/withdraw", payload)
			if status != http.StatusOK {
				fmt.Printf("Withdrawal FAILED (Status: %d)\nResponse: %s\n", status, body)
				os.Exit(1)
			}
			printRawJSON(body)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount in major units, e.g. 1000.50")
	cmd.Flags().StringVar(&currency, "currency", "NGN", "Currency code")
	cmd.Flags().StringVar(&destination, "destination", "wallet", "wallet or bank")
	cmd.Flags().StringVar(&bankAccount, "bank-account", "", "Bank account ID for bank destination")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password with bcrypt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func doGet(path string) (string, int) {
	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	return doRequest(client, req)
}

func doPost(path string, payload any) (string, int) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error encoding request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(client, req)
}

func doRequest(client *http.Client, req *http.Request) (string, int) {
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func printRawJSON(body string) {
	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		fmt.Println(body)
		return
	}
	printJSON(decoded)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
