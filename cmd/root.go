/*
Copyright © 2021 Edmond Cotterell

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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Daskott/sosphone/colors"
	devConfig "github.com/Daskott/sosphone/dev/config"
	"github.com/Daskott/sosphone/logger"
	"github.com/Daskott/sosphone/platform"
	"github.com/Daskott/sosphone/shared"
	"github.com/Daskott/sosphone/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var (
	cfgFile string
	config  *viper.Viper

	isDevEnv    bool
	isTestEnv   bool
	isEphemeral bool

	logg         = logger.NewLogger()
	warningLabel = colors.Yellow("Warning:")
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = createRootCmd()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "sosphone",
		Short: `sosphone keeps an emergency profile & turns it into one-step
SOS actions: call your emergency number, open a URL, show a place on a map
or send an email asking for help.`,
		Version:       fmt.Sprintf("v%s", version),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sosphone.yaml)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")
	cmd.PersistentFlags().BoolVarP(&isTestEnv, "test", "", false, "run in test mode")
	cmd.PersistentFlags().BoolVarP(&isEphemeral, "ephemeral", "", false, "keep preferences in memory, for this run only")

	return cmd
}

// runE wraps a command's run func, so errors are printed once: notices have
// already been shown to the user, anything else is printed in red
func runE(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil && !platform.IsNotice(err) {
			cmd.PrintErrln(colors.Red("Error:"), err)
		}
		return err
	}
}

// ---------------------------------------------------------------------------------//
// Config Helpers
// --------------------------------------------------------------------------------//

// loadConfig reads in config file and ENV variables & returns the validated config
func loadConfig() (*shared.Config, error) {
	config = viper.New()

	if isDevEnv {
		if err := godotenv.Load(); err != nil {
			logg.Warnf("unable to load .env file: %v", err)
		}
	}

	if isTestEnv {
		logger.Quiet()
	}

	if cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(cfgFile)
	} else {
		configName, configDir, err := defaulatCFgNameAndDir()
		if err != nil {
			return nil, err
		}

		// If config file is not found, create one using DEFAULT_SOSPHONE_YML
		configFilePath := filepath.Join(configDir, configName)
		if !utils.FileExist(configFilePath) {
			err = os.WriteFile(configFilePath, []byte(devConfig.DEFAULT_SOSPHONE_YML), 0600)
			if err != nil {
				return nil, err
			}
		}

		config.AddConfigPath(configDir)
		config.SetConfigType("yaml")
		config.SetConfigName(configName)
	}

	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}

	config.SetDefault("sosphone.region", shared.DEFAULT_REGION)
	config.SetDefault("sosphone.dataDir", dataDir)
	config.SetDefault("sosphone.timeZone", "Local")

	// Secrets don't need to be stored in the config, they can be read from the system ENV.
	// FYI: The env var overrides whatever is in the config file
	config.BindEnv("sqlite.passPhrase", "SOSPHONE_SQLITE_PASSPHRASE")
	config.BindEnv("twilio.authToken", "TWILIO_AUTH_TOKEN")
	config.BindEnv("google.applicationCredentials", "GOOGLE_APPLICATION_CREDENTIALS")

	// e.g. SOSPHONE_DATADIR overrides sosphone.dataDir
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	if err := config.ReadInConfig(); err != nil {
		return nil, formattedError("unable to read config file: %v", err)
	}
	logg.Debugf("Using config file: %v", config.ConfigFileUsed())

	cfg := &shared.Config{}
	if err := config.Unmarshal(cfg); err != nil {
		return nil, formattedError("unable to decode config: %v", err)
	}

	if cfg.Sqlite.PassPhrase == "" {
		return nil, formattedError(
			"must set the env var 'SOSPHONE_SQLITE_PASSPHRASE' or add 'sqlite.passPhrase' to %s", config.ConfigFileUsed())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaulatCFgNameAndDir() (configName string, configDir string, err error) {
	configName = ".sosphone.yaml"

	// Use home directory for production
	configDir, err = os.UserHomeDir()
	if err != nil {
		return "", "", err
	}

	if isDevEnv || isTestEnv {
		configName = ".sosphone.dev.yaml"
		configDir, err = os.Getwd()
		if err != nil {
			return "", "", err
		}

		if isTestEnv {
			configName = ".sosphone.yaml"
			configDir = filepath.Join(configDir, "test-fixtures")
		}
	}

	return configName, configDir, err
}

func defaultDataDir() (string, error) {
	if isDevEnv || isTestEnv {
		dir, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, ".sosphone-dev"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sosphone"), nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(colors.Red(format), a...)
}
