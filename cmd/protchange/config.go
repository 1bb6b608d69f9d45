package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage protchange configuration",
		Long: `Show, get, or set configuration values. Config is stored in ~/.protchange.yaml.

Keys: ` + strings.Join(knownKeys(), ", "),
		Example: `  protchange config                                        # show effective config
  protchange config set annotation.strict_deletions true   # fail on multi-deletion records
  protchange config get annotation.info_key                # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get the effective value of a configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

// configFilePath returns the file config set writes to.
func configFilePath() (string, error) {
	if f := viper.ConfigFileUsed(); f != "" {
		return f, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configName+".yaml"), nil
}

func runConfigShow(w io.Writer) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(settingsDoc(settings))
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if f := viper.ConfigFileUsed(); f != "" {
		fmt.Fprintf(w, "# Config file: %s\n", f)
	}
	fmt.Fprint(w, string(out))
	return nil
}

// settingsDoc lays out the resolved settings under their config keys.
func settingsDoc(s *Settings) map[string]interface{} {
	return map[string]interface{}{
		"output": s.Output,
		"db":     s.DB,
		"log": map[string]interface{}{
			"level": s.Log.Level,
		},
		"annotation": map[string]interface{}{
			"info_key":         s.Annotation.InfoKey,
			"strict_deletions": s.Annotation.StrictDeletions,
		},
	}
}

// runConfigSet stores one key in the config file, leaving the other keys
// of the file as they are.
func runConfigSet(w io.Writer, key, value string) error {
	val, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}

	cfgFile, err := configFilePath()
	if err != nil {
		return err
	}

	doc := map[string]interface{}{}
	data, err := os.ReadFile(cfgFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		if doc == nil {
			doc = map[string]interface{}{}
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("reading config: %w", err)
	}

	if err := setNested(doc, strings.Split(key, "."), val); err != nil {
		return fmt.Errorf("%s in %s: %w", key, cfgFile, err)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(cfgFile, out, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %v in %s\n", key, val, cfgFile)
	return nil
}

// setNested assigns val at the dotted path inside doc, creating sections.
func setNested(doc map[string]interface{}, path []string, val interface{}) error {
	for _, section := range path[:len(path)-1] {
		next, ok := doc[section]
		if !ok || next == nil {
			m := map[string]interface{}{}
			doc[section] = m
			doc = m
			continue
		}
		m, ok := next.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%s is not a section", section)
		}
		doc = m
	}
	doc[path[len(path)-1]] = val
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	if _, err := lookupConfigKey(key); err != nil {
		return err
	}
	fmt.Fprintln(w, viper.Get(key))
	return nil
}
