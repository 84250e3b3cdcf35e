/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package main implements em, a scaffolding CLI for Ember applications. It
// creates projects from a boilerplate repository, generates source files from
// skeletons and hands serve and build over to gulp.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cowdogmoo/emrocks/config"
	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Context key type for storing config
type configKeyType struct{}

// configKey is the context key for storing the config
var configKey = configKeyType{}

// rootOptions holds the global flags and what initConfig resolved from them.
// main reads cfg and logger back after Execute to report errors.
type rootOptions struct {
	cfgFile string
	strict  bool
	cwd     string

	cfg    *config.Config
	logger *logging.CustomLogger
}

// workingDir returns --cwd, or the process working directory.
func (o *rootOptions) workingDir() (string, error) {
	if o.cwd != "" {
		return filepath.Abs(o.cwd)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", emerrors.Wrap("get working directory", "", err)
	}
	return dir, nil
}

// exitCodes returns the configured exit codes, or the defaults when the
// config was never loaded.
func (o *rootOptions) exitCodes() config.ExitCodesConfig {
	if o.cfg == nil {
		return config.ExitCodesConfig{UserError: 0, Precondition: 1}
	}
	return o.cfg.ExitCodes
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "em",
		Short: "em - scaffolding for Ember applications",
		Long: `em creates Ember applications from a boilerplate repository and
generates routes, components, models and the rest of an app from skeletons.

Generated files follow the project layout:
  client/app/<type>s/<name>.js          application sources
  client/app/templates/<name>.hbs       templates
  client/tests/unit/<type>s/<name>-test.js
  client/tests/integration/<name>-test.js`,
		Example: `  em new my-app && cd my-app
  em new my-app --path github.com/mattma/Ember-Rocks-Template-Basic
  em generate route:posts/post
  em g component:x-foo
  em serve
  em build`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, opts)
		},
	}
	rootCmd.SetVersionTemplate("em-cli {{.Version}}\n")

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "Config file (default is $XDG_CONFIG_HOME/em/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (color, text, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet mode - only show errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode - show debug output")
	rootCmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Exit with status 1 on usage, naming and conflict errors")
	rootCmd.PersistentFlags().StringVar(&opts.cwd, "cwd", "", "Run as if em was started in this directory")

	rootCmd.AddCommand(newNewCmd(opts))
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// configFromContext retrieves the config from the command context.
// Returns nil if no config is stored in context.
func configFromContext(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey).(*config.Config); ok {
		return cfg
	}
	return nil
}

// initConfig initializes configuration with proper precedence:
// CLI Flags > Environment Variables > Config File > Defaults
func initConfig(cmd *cobra.Command, opts *rootOptions) error {
	// 1. Defaults, EM_* environment variables and the config file
	v, err := config.LoadViperFromPath(opts.cfgFile)
	if err != nil {
		return emerrors.Precondition("cannot load configuration").WithCause(err).
			WithHint("Fix the file or pass another one with --config")
	}

	// 2. Bind Cobra flags to Viper (this enables: flags > env > config > defaults)
	if err := v.BindPFlag("log.level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind log-level flag: %w", err)
	}
	if err := v.BindPFlag("log.format", cmd.Root().PersistentFlags().Lookup("log-format")); err != nil {
		return fmt.Errorf("failed to bind log-format flag: %w", err)
	}
	if err := BindCommandFlagsToViper(v, cmd); err != nil {
		return err
	}

	// 3. Resolve the final config from Viper (single source of truth)
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return emerrors.Precondition("invalid configuration").WithCause(err)
	}

	// 4. Build the logger and store both in context
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := logging.NewCustomLoggerWithOptions(cfg.Log.Level, cfg.Log.Format, quiet, verbose)
	logger.SetOutput(cmd.ErrOrStderr(), cmd.OutOrStdout())

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file %s", used)
	}

	opts.cfg = cfg
	opts.logger = logger

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	return nil
}

// BindFlagsToViper binds all flags from a command to a Viper instance.
// The viperKey parameter is a prefix for the keys (e.g., "generate" for
// generate command flags).
func BindFlagsToViper(v *viper.Viper, cmd *cobra.Command, viperKey string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Convert flag name to viper key format (e.g., "dry-run" -> "dry_run")
		key := strings.ReplaceAll(f.Name, "-", "_")
		if viperKey != "" {
			key = viperKey + "." + key
		}

		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// BindCommandFlagsToViper binds flags from the current command and its parent
// persistent flags to Viper.
func BindCommandFlagsToViper(v *viper.Viper, cmd *cobra.Command) error {
	// Get the command path for namespacing (e.g., "generate", "config.set")
	cmdPath := getCommandPath(cmd)
	if cmdPath == "" {
		return nil
	}

	if err := BindFlagsToViper(v, cmd, cmdPath); err != nil {
		return err
	}

	var bindErr error
	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("failed to bind inherited flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// getCommandPath returns the command path for Viper key namespacing.
// For example, "em config set" returns "config.set".
func getCommandPath(cmd *cobra.Command) string {
	var parts []string
	current := cmd

	for current != nil && current.Parent() != nil {
		parts = append([]string{current.Name()}, parts...)
		current = current.Parent()
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ".")
}
