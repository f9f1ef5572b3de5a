package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	dailyevent "github.com/dailyevent/partner-go"
)

func (a *app) configureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store the API key and environment in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigure(cmd)
		},
	}
	return cmd
}

func (a *app) runConfigure(cmd *cobra.Command) error {
	key := a.v.GetString(keyAPIKey)
	if !cmd.Flags().Changed(keyAPIKey) {
		var err error
		key, err = a.env.ReadSecret("API key: ")
		if err != nil {
			return err
		}
	}
	if key == "" {
		return dailyevent.ErrMissingAPIKey
	}

	environment := a.v.GetString(keyEnvironment)
	switch dailyevent.Environment(environment) {
	case dailyevent.EnvironmentSandbox, dailyevent.EnvironmentProduction:
	default:
		return fmt.Errorf("%w: unknown environment %q", dailyevent.ErrInvalidConfig, environment)
	}

	path, _, err := a.configPath()
	if err != nil {
		return err
	}

	out := viper.New()
	out.SetConfigType("yaml")
	out.Set(keyAPIKey, key)
	out.Set(keyEnvironment, environment)
	if u := a.v.GetString(keyBaseURL); u != "" {
		out.Set(keyBaseURL, u)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := out.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("restrict config permissions: %w", err)
	}

	success(a.env.Stderr, "Configuration written to %s", path)
	return nil
}
