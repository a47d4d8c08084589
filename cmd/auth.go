package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ines/taskdeck/internal/output"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in to the task manager server",
	GroupID: "auth",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := newSession()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		if !store.Login(email, password) {
			output.Error("Invalid credentials")
			return fmt.Errorf("login failed")
		}
		output.Success("Logged in as %s", email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create a new account",
	GroupID: "auth",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := newSession()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}

		// Local precondition: checked before any network call.
		if password != confirm {
			output.Error("Passwords do not match")
			return fmt.Errorf("password mismatch")
		}

		if !store.Register(email, password) {
			output.Error("Registration failed")
			return fmt.Errorf("registration failed")
		}
		output.Success("Account created. Log in with: taskdeck login")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Log out and discard the session token",
	GroupID: "auth",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := newSession()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		store.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show authentication status",
	GroupID: "auth",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := newSession()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if !store.Authenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		tokenPrefix := store.Token()
		if len(tokenPrefix) > 12 {
			tokenPrefix = tokenPrefix[:12] + "..."
		}
		if email := store.Email(); email != "" {
			fmt.Printf("Email:  %s\n", email)
		}
		fmt.Printf("Server: %s\n", client.BaseURL)
		fmt.Printf("Token:  %s\n", tokenPrefix)
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("input required")
	}
	return line, nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// Piped input (tests, scripts): fall back to a plain line read.
		return promptLine("")
	}
	pw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(pw) == 0 {
		return "", fmt.Errorf("password required")
	}
	return string(pw), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
