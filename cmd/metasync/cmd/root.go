// Copyright © 2021 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oneconcern/metasync/pkg/model"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "metasync",
	Short: "Metasync synchronizes metadata with a remote org",
	Long: `Metasync moves metadata between a local source tree and a remote org.

It translates between the source layout on disk and the manifest the server
expects, then drives the retrieval and deployment jobs to completion.
Credentials and defaults come from a metasync.yaml config file, environment
variables or flags, in that order of increasing precedence.
`,
}

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addLogLevelFlag(rootCmd)
	addUsernameFlag(rootCmd)
	addPasswordFlag(rootCmd)
	addSecurityTokenFlag(rootCmd)
	addLoginEndpointFlag(rootCmd)
	addAPIVersionFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("apiversion", model.DefaultAPIVersion)
	if os.Getenv("METASYNC_CONFIG") != "" {
		// Use config file from the flag.
		viper.SetConfigFile(os.Getenv("METASYNC_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.metasync")
		viper.AddConfigPath("/etc/metasync")
		viper.SetConfigName("metasync")
	}

	viper.SetEnvPrefix("metasync")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	config, err = newConfig()
	if err != nil {
		logFatalln(err)
	}
	config.setMetasyncParams(&metasyncFlags)
}
