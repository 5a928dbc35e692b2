package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/zendesk/internal/constants"
	"github.com/fivetwenty-io/zendesk/pkg/zdclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Login to a Zendesk account",
		Long: `Verify API token credentials against the account and store them in the
configuration file. Missing values are prompted for; the API key is read
without echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error

			config.Subdomain, err = promptIfEmpty(in, out, config.Subdomain, "Subdomain: ")
			if err != nil {
				return err
			}

			config.Username, err = promptIfEmpty(in, out, config.Username, "Email: ")
			if err != nil {
				return err
			}

			if config.APIKey == "" {
				config.APIKey, err = readSecret(in, out, "API token: ")
				if err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.ShortHTTPTimeout)
			defer cancel()

			me, err := verifyCredentials(ctx, config)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			config.LastLogin = &now

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(out, "Logged in to %s as %s (%s)\n", config.Subdomain, me.name, me.role)

			return nil
		},
	}
}

type identity struct {
	name string
	role string
}

func verifyCredentials(ctx context.Context, config *Config) (identity, error) {
	clientConfig, err := clientConfig(config)
	if err != nil {
		return identity{}, err
	}

	client, err := zdclient.New(ctx, clientConfig)
	if err != nil {
		return identity{}, fmt.Errorf("failed to create client: %w", err)
	}

	body, err := client.Users().Me(ctx)
	if err != nil {
		return identity{}, fmt.Errorf("failed to verify credentials: %w", err)
	}

	user, _ := body.Object("user")

	// Zendesk answers bad tokens for /users/me with an anonymous end-user.
	if id, ok := user.Int64("id"); !ok || id == 0 {
		return identity{}, fmt.Errorf("failed to verify credentials: %w", constants.ErrNoCredentials)
	}

	return identity{name: orNotAvailable(user.String("name")), role: orNotAvailable(user.String("role"))}, nil
}

func promptIfEmpty(in *bufio.Reader, out io.Writer, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}

	_, _ = fmt.Fprint(out, prompt)

	line, _ := in.ReadString('\n')

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%w: %s", constants.ErrEmptyInput, strings.TrimSuffix(prompt, ": "))
	}

	return line, nil
}

// readSecret reads without echo from a terminal, falling back to a plain
// line read when stdin is not one.
func readSecret(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec
	if !term.IsTerminal(fd) {
		return promptIfEmpty(in, out, "", prompt)
	}

	_, _ = fmt.Fprint(out, prompt)

	secret, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("failed to read API token: %w", err)
	}

	if len(secret) == 0 {
		return "", fmt.Errorf("%w: API token", constants.ErrEmptyInput)
	}

	return string(secret), nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Long:  "Remove the API token from the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = ""
			config.LastLogin = nil
			viper.Set("api_key", "")

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}
