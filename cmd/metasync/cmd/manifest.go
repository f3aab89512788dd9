// Copyright © 2021 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

// manifestCmd represents the manifest related commands
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Commands to manage manifests",
	Long: `Commands to manage the manifests that select artifacts for retrieval and deployment.

A manifest groups artifact members by type. On disk it is the package.xml file at the
root of a source tree; deletion manifests (destructive changes) use the same format.`,
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}
