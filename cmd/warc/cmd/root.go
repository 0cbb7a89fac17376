/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package cmd

import (
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/nlnwa/webarc/cmd/warc/cmd/cat"
	"github.com/nlnwa/webarc/cmd/warc/cmd/extract"
	"github.com/nlnwa/webarc/cmd/warc/cmd/ls"
	"github.com/nlnwa/webarc/cmd/warc/cmd/serve"
	"github.com/nlnwa/webarc/cmd/warc/cmd/watch"
	"github.com/nlnwa/webarc/cmd/warc/internal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type conf struct {
	cfgFile string
}

// NewCommand returns a new cobra.Command implementing the root command for warc
func NewCommand() *cobra.Command {
	c := &conf{}
	cmd := &cobra.Command{
		Use:   "warc",
		Short: "Decode ARC and WARC files",
		Long: `warc reads web archive containers in the ARC and WARC formats, plain or gzip compressed,
and extracts the archived content with its metadata.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initConfig(cmd); err != nil {
				return err
			}
			return initLogging()
		},
	}

	// Flags
	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.webarc.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level, one of panic, fatal, error, warn, info, debug or trace")
	cmd.PersistentFlags().String("log-format", "text", "log format, one of text or json")
	cmd.PersistentFlags().Var(internal.NewPolicyValue("warn"), "syntax-errors", "how to handle syntax errors in containers: ignore, warn or fail")
	cmd.PersistentFlags().Var(internal.NewPolicyValue("warn"), "handler-errors", "how to handle errors extracting a record: ignore, warn or fail")
	cmd.PersistentFlags().String("buffer-size", "", "size of the read buffer, e.g. 64KB")

	// Subcommands
	cmd.AddCommand(ls.NewCommand())
	cmd.AddCommand(cat.NewCommand())
	cmd.AddCommand(extract.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func (c *conf) initConfig(cmd *cobra.Command) error {
	if c.cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(c.cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return err
		}

		// Search config in home directory with name ".webarc" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".webarc")
	}

	viper.SetEnvPrefix("WEBARC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if c.cfgFile != "" {
		return fmt.Errorf("could not read config file: %w", err)
	}
	return nil
}

func initLogging() error {
	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch viper.GetString("log-format") {
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format '%s'", viper.GetString("log-format"))
	}
	return nil
}
