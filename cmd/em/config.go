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

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cowdogmoo/emrocks/cli"
	"github.com/cowdogmoo/emrocks/config"
	emerrors "github.com/cowdogmoo/emrocks/errors"
	"github.com/cowdogmoo/emrocks/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage em configuration",
		Long: `Manage em's configuration file.

Configuration precedence (highest to lowest):
1. CLI flags
2. Environment variables (EM_*, ex: EM_LOG_LEVEL)
3. Configuration file ($XDG_CONFIG_HOME/em/config.yaml)
4. Built-in defaults

The boilerplate access token is read from EM_TEMPLATE_TOKEN only and is
never written to the configuration file.`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration file",
		Long: `Create a new configuration file with the current values.

If the file already exists, it will be overwritten only with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the effective configuration after merging defaults, the
configuration file, environment variables and CLI flags.`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	getCmd := &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a configuration value",
		Example: "  em config get project.client_dir",
		Args:    cobra.ExactArgs(1),
		RunE:    runConfigGet,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  em config set log.format text
  em config set exit_codes.user_error 1`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}

	configCmd.AddCommand(initCmd, showCmd, pathCmd, getCmd, setCmd)
	return configCmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	configPath, err := config.ConfigFile(configFileName)
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	ctx := cmd.Context()
	if _, err := os.Stat(configPath); err == nil {
		if !force {
			return emerrors.Conflict("config file already exists at %s", configPath).
				WithHint("Use --force to overwrite it")
		}
		logging.WarnContext(ctx, "Overwriting existing config file at %s", configPath)
	}

	if err := writeConfig(cmd, configPath); err != nil {
		return err
	}

	logging.DoneContext(ctx, "Configuration file created at: %s", configPath)
	return nil
}

// writeConfig writes the effective config from context to path. The token
// is excluded by its yaml tag.
func writeConfig(cmd *cobra.Command, path string) error {
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, config.FilePermReadWrite); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Current em configuration")
	fmt.Fprintln(out, "# Sources: defaults -> config file -> environment variables -> CLI flags")
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))

	if cfg.Template.Token != "" {
		fmt.Fprintf(out, "\n# %s is set\n", config.TokenEnvVar)
	}

	v := config.NewConfigViper()
	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintf(out, "\n# Config file: %s\n", v.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "\n# No config file found (using defaults)")
	}

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	v := config.NewConfigViper()
	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(out, v.ConfigFileUsed())
		return nil
	}

	defaultPath, err := config.ConfigFile(configFileName)
	if err != nil {
		return fmt.Errorf("failed to get default config path: %w", err)
	}
	fmt.Fprintf(out, "%s (not created yet)\n", defaultPath)
	logging.InfoContext(cmd.Context(), "Run 'em config init' to create the config file")

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])
	raw := args[1]

	if err := cli.NewValidator().ValidateConfigSetOptions(key, raw); err != nil {
		return err
	}
	if key == "template.token" {
		return emerrors.Usage("template.token cannot be stored in the config file").
			WithHint(fmt.Sprintf("Export %s instead", config.TokenEnvVar))
	}
	if !config.IsKnownKey(key) {
		return emerrors.Usage("unknown config key: %s", key).
			WithHint("Run 'em config show' to see the available keys")
	}

	value, err := coerceValue(key, raw)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	v := config.NewConfigViper()
	if err := v.ReadInConfig(); err != nil {
		if !config.IsNotFoundError(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}

		logging.WarnContext(ctx, "Config file doesn't exist. Creating it now...")
		configPath, err := config.ConfigFile(configFileName)
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		if err := writeConfig(cmd, configPath); err != nil {
			return err
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read newly created config: %w", err)
		}
	}

	v.Set(key, value)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logging.InfoContext(ctx, "Set %s = %s", key, logging.RedactSensitiveValue(key, raw))
	logging.InfoContext(ctx, "Config file updated: %s", v.ConfigFileUsed())

	return nil
}

// coerceValue converts raw to the type of key's default so the file keeps
// booleans and numbers unquoted.
func coerceValue(key, raw string) (interface{}, error) {
	switch config.Defaults()[key].(type) {
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, emerrors.Usage("%s expects true or false, got %q", key, raw)
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, emerrors.Usage("%s expects a number, got %q", key, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	// Marshal config to YAML and reload into viper for easy key access
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	value := v.Get(key)
	if value == nil {
		return emerrors.Usage("key not found: %s", key)
	}

	if section, ok := value.(map[string]interface{}); ok {
		out, err := yaml.Marshal(section)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
