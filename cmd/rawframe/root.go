package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCommand builds the command tree around a fresh viper instance so
// that each invocation resolves flags, environment and config file
// independently.
func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("rawframe")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "rawframe",
		Short:        "Inspect and convert raw video frames",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cmd)
		},
	}
	root.PersistentFlags().String("config", "", "YAML file with flag defaults")
	root.PersistentFlags().String("log-level", "warn", "logrus level (debug, info, warn, error)")

	root.AddCommand(newInfoCommand(v))
	root.AddCommand(newConvertCommand(v))
	return root
}

// loadConfig binds the running command's flags, reads the optional config
// file and applies the log level.
func loadConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(cmd.ErrOrStderr())

	logrus.WithFields(logrus.Fields{
		"function": "loadConfig",
		"command":  cmd.Name(),
		"config":   v.ConfigFileUsed(),
	}).Debug("Configuration loaded")
	return nil
}
