// Copyright © 2021 One Concern

package cmd

import (
	"context"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/oneconcern/metasync/pkg/archive"
	"github.com/oneconcern/metasync/pkg/core"
	"github.com/oneconcern/metasync/pkg/model"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy a local source tree to the remote org",
	Long: `Deploy the artifacts selected by a manifest from a local source tree to the remote org.

The selected files are packed into an archive together with the manifest and submitted
as a server-side job, which is polled to completion. With --validate the deployment is
checked server-side without being committed; a successful validation can then be
committed with "metasync deploy promote" without re-running its tests.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l := newLogger()
		fs := afero.NewOsFs()

		manifestPath := metasyncFlags.deploy.Manifest
		if manifestPath == "" {
			manifestPath = filepath.Join(metasyncFlags.deploy.Source, "package.xml")
		}
		m := model.NewManifest(model.APIVersion(metasyncFlags.auth.APIVersion))
		if err := m.ReadFrom(fs, manifestPath); err != nil {
			wrapFatalln("read manifest "+manifestPath, err)
			return
		}

		files, err := m.ArchiveFileList()
		if err != nil {
			wrapFatalln("resolve archive file list", err)
			return
		}

		// the manifest travels inside the archive, whatever its location on disk
		staging := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(fs), afero.NewMemMapFs())
		data, err := m.ToXML()
		if err != nil {
			wrapFatalln("serialize manifest", err)
			return
		}
		if err = afero.WriteFile(staging, filepath.Join(metasyncFlags.deploy.Source, "package.xml"), data, 0644); err != nil {
			wrapFatalln("stage manifest", err)
			return
		}
		files = append(files, "package.xml")

		blob, err := archive.New(staging).MakeZip(metasyncFlags.deploy.Source, files)
		if err != nil {
			wrapFatalln("pack source tree", err)
			return
		}

		options := model.DeployOptions{
			CheckOnly:       metasyncFlags.deploy.Validate,
			RollbackOnError: metasyncFlags.deploy.RollbackOnError,
			PurgeOnDelete:   metasyncFlags.deploy.PurgeOnDelete,
			SinglePackage:   true,
			TestLevel:       metasyncFlags.deploy.TestLevel,
			RunTests:        metasyncFlags.deploy.RunTests,
		}
		gw := newGateway(l)
		res, err := core.Deploy(ctx, gw, blob, options, jobOptions(l)...)
		if err != nil {
			wrapFatalln("deploy", err)
			return
		}
		printDeployResult(res)
	},
}

func printDeployResult(res model.DeployResult) {
	infoLogger.Println(color.GreenString("deployed %d/%d components",
		res.NumberComponentsDeployed, res.NumberComponentsTotal))
	if res.NumberTestsTotal > 0 {
		infoLogger.Printf("tests: %d/%d passed, %d failed",
			res.NumberTestsCompleted, res.NumberTestsTotal, res.NumberTestErrors)
	}
	if res.CheckOnly {
		infoLogger.Println("validation id:", res.ID)
		infoLogger.Println(`promote with "metasync deploy promote --validation-id ` + res.ID + `"`)
	}
}

func init() {
	addSourceFlag(deployCmd, &metasyncFlags.deploy.Source)
	addDeployManifestFlag(deployCmd)
	addValidateFlag(deployCmd)
	addRollbackFlag(deployCmd)
	addPurgeOnDeleteFlag(deployCmd)
	addTestLevelFlag(deployCmd)
	addRunTestsFlag(deployCmd)
	addPollIntervalFlag(deployCmd)
	addMaxChecksFlag(deployCmd)

	rootCmd.AddCommand(deployCmd)
}
