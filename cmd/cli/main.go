package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "banco-cli",
		Short: "Banco demo CLI tool",
		Long:  `A command line interface for interacting with the banking demo API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token (from login)")

	registerCmd := &cobra.Command{
		Use:   "register <name> <email> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doRegister(args[0], args[1], args[2])
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Authenticate and print a bearer token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doLogin(args[0], args[1])
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer <from-account> <to-account> <amount-centavos>",
		Short: "Transfer between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doTransfer(args[0], args[1], args[2])
		},
	}

	cardCmd := &cobra.Command{
		Use:   "card <account-id>",
		Short: "Show the account's credit card and open invoice",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doCard(args[0])
		},
	}

	payCmd := &cobra.Command{
		Use:   "pay <account-id>",
		Short: "Pay the open invoice in full",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPay(args[0])
		},
	}

	autoDebitCmd := &cobra.Command{
		Use:   "auto-debit <account-id> <on|off>",
		Short: "Toggle invoice auto-debit",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doAutoDebit(args[0], args[1] == "on")
		},
	}

	rootCmd.AddCommand(registerCmd, loginCmd, transferCmd, cardCmd, payCmd, autoDebitCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// formatBRL renders centavos as Brazilian currency.
func formatBRL(cents int64) string {
	value := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
	return "R$ " + strings.ReplaceAll(value.StringFixed(2), ".", ",")
}

func request(method, path string, payload any) map[string]any {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Error encoding request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	var result map[string]any
	if len(data) > 0 && string(data) != "null\n" {
		if err := json.Unmarshal(data, &result); err != nil {
			fmt.Printf("Failed to parse response: %v\n", err)
			os.Exit(1)
		}
	}

	return result
}

func doRegister(name, email, password string) {
	result := request(http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})

	fmt.Println("Registered. Check your mailbox for the verification link.")
	fmt.Printf("User ID: %s\n", result["id"])
}

func doLogin(email, password string) {
	result := request(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})

	fmt.Printf("Token: %s\n", result["token"])
	if user, ok := result["user"].(map[string]any); ok {
		fmt.Printf("Account: %s\n", user["accountId"])
	}
}

func doTransfer(from, to, amount string) {
	cents, err := decimal.NewFromString(amount)
	if err != nil {
		fmt.Printf("Invalid amount: %v\n", err)
		os.Exit(1)
	}

	result := request(http.MethodPost, "/transfer", map[string]any{
		"fromId": from,
		"toId":   to,
		"amount": cents.IntPart(),
	})

	fmt.Printf("Transfer %s: %s\n", result["id"], formatBRL(cents.IntPart()))
}

func doCard(accountID string) {
	result := request(http.MethodGet, "/card?accountId="+accountID, nil)

	fmt.Printf("%s **** %s\n", result["brand"], result["last4"])
	if invoice, ok := result["invoiceAmount"].(float64); ok {
		fmt.Printf("Open invoice: %s\n", formatBRL(int64(invoice)))
	}
	if available, ok := result["availableLimit"].(float64); ok {
		fmt.Printf("Available limit: %s\n", formatBRL(int64(available)))
	}
	if charges, ok := result["charges"].([]any); ok {
		fmt.Printf("Charges: %d\n", len(charges))
	}
}

func doPay(accountID string) {
	result := request(http.MethodPost, "/card/pay", map[string]string{
		"accountId": accountID,
	})

	if paid, ok := result["paid"].(float64); ok {
		fmt.Printf("Paid: %s\n", formatBRL(int64(paid)))
	}
	if account, ok := result["account"].(map[string]any); ok {
		if balance, ok := account["balance"].(float64); ok {
			fmt.Printf("New balance: %s\n", formatBRL(int64(balance)))
		}
	}
}

func doAutoDebit(accountID string, active bool) {
	result := request(http.MethodPut, "/auto-debit", map[string]any{
		"accountId": accountID,
		"active":    active,
	})

	fmt.Printf("Auto-debit active: %v\n", result["active"])
}
