// Copyright © 2021 One Concern

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oneconcern/metasync/pkg/core"
)

var deployPromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Commit a previously validated deployment",
	Long: "Commit a deployment that was validated with --validate, without re-running its tests. " +
		"The validation must be recent and must have run the tests the org requires.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l := newLogger()
		if metasyncFlags.deploy.ValidationID == "" {
			wrapFatalln("a validation id is required", nil)
			return
		}

		gw := newGateway(l)
		id, err := core.DeployRecentValidation(ctx, gw, metasyncFlags.deploy.ValidationID)
		if err != nil {
			wrapFatalln("promote validation "+metasyncFlags.deploy.ValidationID, err)
			return
		}
		res, err := core.AwaitDeploy(ctx, gw, id, jobOptions(l)...)
		if err != nil {
			wrapFatalln("await promoted deployment "+id, err)
			return
		}
		printDeployResult(res)
	},
}

func init() {
	requiredFlags := []string{addValidationIDFlag(deployPromoteCmd)}
	addPollIntervalFlag(deployPromoteCmd)
	addMaxChecksFlag(deployPromoteCmd)

	for _, flag := range requiredFlags {
		if err := deployPromoteCmd.MarkFlagRequired(flag); err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}

	deployCmd.AddCommand(deployPromoteCmd)
}
