package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL   string
	timeout   time.Duration
	viewpoint string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "splittab-cli",
		Short: "Splittab CLI tool",
		Long:  `A command line interface for interacting with the Splittab API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Splittab API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&viewpoint, "viewpoint", "", "Member whose perspective to use")

	rootCmd.AddCommand(membersCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(settleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func membersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List roster members ranked for the viewpoint",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/members", nil)
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [member]",
		Short: "Show the net balance with a member",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/members/"+url.PathEscape(args[0])+"/balance", nil)
		},
	}
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show aggregate owed-to-me and I-owe totals",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/summary", nil)
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [member]",
		Short: "Show the transaction history with a member, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/members/"+url.PathEscape(args[0])+"/history", nil)
		},
	}
}

func addCmd() *cobra.Command {
	var (
		from       string
		to         string
		kind       string
		amount     string
		note       string
		occurredOn string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"from_member": from,
				"to_member":   to,
				"kind":        kind,
				"amount":      amount,
				"note":        note,
			}
			if occurredOn != "" {
				payload["occurred_on"] = occurredOn
			}

			post("/api/v1/transactions", payload)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Member recording the transaction")
	cmd.Flags().StringVar(&to, "to", "", "The other member")
	cmd.Flags().StringVar(&kind, "kind", "", "Transaction kind: borrow, lend or repayment")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	cmd.Flags().StringVar(&occurredOn, "occurred-on", "", "Date the transaction happened (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle [member]",
		Short: "Record the repayment that zeroes out the balance with a member",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/settlements", map[string]any{
				"viewpoint": viewpoint,
				"other":     args[0],
			})
		},
	}
}

func get(path string, query url.Values) {
	client := &http.Client{Timeout: timeout}

	u := baseURL + path
	if query == nil {
		query = url.Values{}
	}
	if viewpoint != "" {
		query.Set("viewpoint", viewpoint)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := client.Get(u)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func post(path string, payload any) {
	client := &http.Client{Timeout: timeout}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(body), 2000))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
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
