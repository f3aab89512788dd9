package cmd

import (
	"os/user"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var configGen = &cobra.Command{
	Use:   "create",
	Short: "Create a config",
	Long:  "Create a config to use for metasync. Config file will be placed in $HOME/.metasync/metasync.yaml",
	Run: func(cmd *cobra.Command, args []string) {
		if metasyncFlags.auth.Username == "" {
			wrapFatalln("a user name is required", nil)
			return
		}
		usr, err := user.Current()
		if usr == nil || err != nil {
			wrapFatalln("Could not get home directory for user", nil)
			return
		}
		config := CLIConfig{
			Username:      metasyncFlags.auth.Username,
			Password:      metasyncFlags.auth.Password,
			SecurityToken: metasyncFlags.auth.SecurityToken,
			Endpoint:      metasyncFlags.auth.LoginEndpoint,
			APIVersion:    metasyncFlags.auth.APIVersion,
		}
		o, e := yaml.Marshal(config)
		if e != nil {
			wrapFatalln("serialize config to yaml", e)
			return
		}
		fs := afero.NewOsFs()
		_ = fs.Mkdir(filepath.Join(usr.HomeDir, ".metasync"), 0777)
		err = afero.WriteFile(fs, filepath.Join(usr.HomeDir, ".metasync", "metasync.yaml"), o, 0600)
		if err != nil {
			wrapFatalln("write config file", err)
			return
		}
		infoLogger.Println("config written to", filepath.Join(usr.HomeDir, ".metasync", "metasync.yaml"))
	},
}

func init() {
	configCmd.AddCommand(configGen)
}
