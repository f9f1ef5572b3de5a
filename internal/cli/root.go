// Package cli implements the partnerctl command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	dailyevent "github.com/dailyevent/partner-go"
)

// Config keys shared by flags, environment variables and the config file.
const (
	keyAPIKey      = "api-key"
	keyEnvironment = "environment"
	keyBaseURL     = "base-url"
	keyTimeout     = "timeout"
	keyRetries     = "retries"
	keyDebug       = "debug"
)

// EnvPrefix prefixes environment variables, e.g. DAILYEVENT_API_KEY.
const EnvPrefix = "DAILYEVENT"

// DefaultConfigName is the config file looked up in the home directory.
const DefaultConfigName = ".partnerctl.yaml"

var errNoAPIKey = errors.New("no API key configured: run 'partnerctl configure' or set DAILYEVENT_API_KEY")

type app struct {
	env     *Env
	v       *viper.Viper
	version string
	cfgFile string
}

// NewRootCmd builds the partnerctl command tree.
func NewRootCmd(env *Env, version string) *cobra.Command {
	if env == nil {
		env = DefaultEnv()
	}
	if env.HomeDir == nil {
		env.HomeDir = homedir.Dir
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.ReadSecret == nil {
		env.ReadSecret = env.readSecret
	}

	a := &app{env: env, v: viper.New(), version: version}

	root := &cobra.Command{
		Use:           "partnerctl",
		Short:         "Command-line client for the DailyEvent Partner API",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}
	root.SetIn(env.Stdin)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default $HOME/"+DefaultConfigName+")")
	pf.String(keyAPIKey, "", "Partner API key")
	pf.String(keyEnvironment, string(dailyevent.EnvironmentSandbox), "API environment: sandbox or production")
	pf.String(keyBaseURL, "", "override the API base URL")
	pf.Duration(keyTimeout, dailyevent.DefaultTimeout, "per-request timeout")
	pf.Int(keyRetries, dailyevent.DefaultMaxRetries, "maximum attempts for retryable failures")
	pf.Bool(keyDebug, false, "log requests and responses to stderr")

	for _, key := range []string{keyAPIKey, keyEnvironment, keyBaseURL, keyTimeout, keyRetries, keyDebug} {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(
		a.configureCmd(),
		a.quotesCmd(),
		a.policiesCmd(),
		a.webhooksCmd(),
	)

	return root
}

// loadConfig reads the config file and environment. A missing default
// config file is not an error.
func (a *app) loadConfig() error {
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	path, explicit, err := a.configPath()
	if err != nil {
		return err
	}
	a.v.SetConfigFile(path)
	a.v.SetConfigType("yaml")

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || (!errors.As(err, &notFound) && !isNotExist(err)) {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// configPath returns the config file path and whether the user chose it.
func (a *app) configPath() (string, bool, error) {
	if a.cfgFile != "" {
		return a.cfgFile, true, nil
	}
	home, err := a.env.HomeDir()
	if err != nil {
		return "", false, fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigName), false, nil
}

func (a *app) logger() *slog.Logger {
	level := slog.LevelInfo
	if a.v.GetBool(keyDebug) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.env.Stderr, &slog.HandlerOptions{Level: level}))
}

// client builds an SDK client from the merged configuration.
func (a *app) client() (*dailyevent.Client, error) {
	key := a.v.GetString(keyAPIKey)
	if key == "" {
		return nil, errNoAPIKey
	}

	opts := []dailyevent.Option{
		dailyevent.WithEnvironment(dailyevent.Environment(a.v.GetString(keyEnvironment))),
		dailyevent.WithTimeout(a.v.GetDuration(keyTimeout)),
		dailyevent.WithMaxRetries(a.v.GetInt(keyRetries)),
		dailyevent.WithUserAgent("partnerctl/" + a.version),
		dailyevent.WithDebug(a.v.GetBool(keyDebug)),
		dailyevent.WithLogger(a.logger()),
	}
	if u := a.v.GetString(keyBaseURL); u != "" {
		opts = append(opts, dailyevent.WithBaseURL(u))
	}

	return dailyevent.New(key, opts...)
}
