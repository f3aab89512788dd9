// Copyright © 2021 One Concern

package cmd

import (
	"context"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/oneconcern/metasync/pkg/archive"
	"github.com/oneconcern/metasync/pkg/core"
	"github.com/oneconcern/metasync/pkg/model"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve artifacts into a local source tree",
	Long: "Retrieve the artifacts listed in a manifest from the remote org and extract them " +
		"into a local source tree. The retrieval runs as a server-side job which is polled to completion.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l := newLogger()
		fs := afero.NewOsFs()

		m := model.NewManifest(model.APIVersion(metasyncFlags.auth.APIVersion))
		if err := m.ReadFrom(fs, metasyncFlags.retrieve.Manifest); err != nil {
			wrapFatalln("read manifest "+metasyncFlags.retrieve.Manifest, err)
			return
		}

		gw := newGateway(l)
		res, err := core.Retrieve(ctx, gw, m, jobOptions(l)...)
		if err != nil {
			wrapFatalln("retrieve", err)
			return
		}
		for _, msg := range res.Messages {
			infoLogger.Println(color.YellowString("warning: %s: %s", msg.FileName, msg.Problem))
		}

		var (
			count int
			total int64
		)
		err = archive.New(fs).Unzip(metasyncFlags.retrieve.Dest, res.ZipFile, func(name string, size int64) {
			count++
			total += size
			infoLogger.Printf("%s (%s)", name, units.HumanSize(float64(size)))
		})
		if err != nil {
			wrapFatalln("extract retrieved archive", err)
			return
		}
		infoLogger.Println(color.GreenString("retrieved %d files (%s) into %s",
			count, units.HumanSize(float64(total)), metasyncFlags.retrieve.Dest))
	},
}

func init() {
	addRetrieveManifestFlag(retrieveCmd)
	addDestFlag(retrieveCmd)
	addPollIntervalFlag(retrieveCmd)
	addMaxChecksFlag(retrieveCmd)

	rootCmd.AddCommand(retrieveCmd)
}
