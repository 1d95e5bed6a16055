/*
Copyright © 2025 Mirko Lenz

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "deepl-pro",
	Short: "DeepL Pro translation client",
	Long: `A command line client for the DeepL Pro v2 translation API.

The auth key is resolved from --auth-key, the DEEPL_AUTH_KEY environment
variable, or the config file, in that order.

Use "deepl-pro translate --help" for translation options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.deepl-pro.yaml)")
	rootCmd.PersistentFlags().String("auth-key", "", "DeepL API authentication key")
	rootCmd.PersistentFlags().StringP("source", "s", "en", "source language code")
	rootCmd.PersistentFlags().StringP("target", "t", "de", "target language code")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose logging")

	viper.BindPFlag("auth_key", rootCmd.PersistentFlags().Lookup("auth-key"))
	viper.BindPFlag("source_lang", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("target_lang", rootCmd.PersistentFlags().Lookup("target"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".deepl-pro")
	}

	viper.SetEnvPrefix("DEEPL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine, the key may come from flags or env.
	_ = viper.ReadInConfig()
}
