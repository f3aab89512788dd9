package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// bug in viper? Need to keep names of fields the same as the serialized names..
	Username      string  `json:"username" yaml:"username"`           // User name to log in with
	Password      string  `json:"password" yaml:"password"`           // Password to log in with
	SecurityToken string  `json:"securitytoken" yaml:"securitytoken"` // Security token appended to the password
	Endpoint      string  `json:"endpoint" yaml:"endpoint"`           // Login endpoint
	APIVersion    float64 `json:"apiversion" yaml:"apiversion"`       // API version to negotiate
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setMetasyncParams fills in flag values left unset from the configuration
func (c *CLIConfig) setMetasyncParams(flags *flagsT) {
	if flags.auth.Username == "" {
		flags.auth.Username = c.Username
	}
	if flags.auth.Password == "" {
		flags.auth.Password = c.Password
	}
	if flags.auth.SecurityToken == "" {
		flags.auth.SecurityToken = c.SecurityToken
	}
	if flags.auth.LoginEndpoint == "" {
		flags.auth.LoginEndpoint = c.Endpoint
	}
	if c.APIVersion != 0 && !rootCmd.PersistentFlags().Changed("api-version") {
		flags.auth.APIVersion = c.APIVersion
	}
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage the metasync CLI config.

Configuration for metasync is the common set of flags that are needed for most commands
and do not change across runs, analogous to "git config ...".`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
