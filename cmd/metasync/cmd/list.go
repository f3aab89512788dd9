// Copyright © 2021 One Concern

package cmd

import (
	"context"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/oneconcern/metasync/pkg/core"
	"github.com/oneconcern/metasync/pkg/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List artifacts present in the remote org",
	Long: `List the artifacts of the given types present in the remote org.

With --manifest-out the listing is written as a manifest instead of being printed,
ready to feed into "metasync retrieve".`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l := newLogger()
		if len(metasyncFlags.list.Types) == 0 {
			wrapFatalln("at least one --type is required", nil)
			return
		}

		queries := make([]model.ListMetadataQuery, 0, len(metasyncFlags.list.Types))
		for _, typeName := range metasyncFlags.list.Types {
			queries = append(queries, model.ListMetadataQuery{
				Type:   typeName,
				Folder: metasyncFlags.list.Folder,
			})
		}

		gw := newGateway(l)
		groups, err := core.ListMetadata(ctx, gw, queries, metasyncFlags.auth.APIVersion)
		if err != nil {
			wrapFatalln("list metadata", err)
			return
		}

		if metasyncFlags.list.Manifest != "" {
			m := model.NewManifest(model.APIVersion(metasyncFlags.auth.APIVersion))
			m.AddGroups(groups)
			if err := m.WriteTo(afero.NewOsFs(), metasyncFlags.list.Manifest); err != nil {
				wrapFatalln("write manifest "+metasyncFlags.list.Manifest, err)
				return
			}
			infoLogger.Println("manifest written to", metasyncFlags.list.Manifest)
			return
		}

		typeNames := make([]string, 0, len(groups))
		for typeName := range groups {
			typeNames = append(typeNames, typeName)
		}
		sort.Strings(typeNames)
		for _, typeName := range typeNames {
			infoLogger.Println(color.CyanString("%s:", typeName))
			members := append([]string(nil), groups[typeName]...)
			sort.Strings(members)
			for _, member := range members {
				infoLogger.Println("  " + member)
			}
		}
	},
}

func init() {
	requiredFlags := []string{addListTypesFlag(listCmd)}
	addListFolderFlag(listCmd)
	addListManifestFlag(listCmd)

	for _, flag := range requiredFlags {
		if err := listCmd.MarkFlagRequired(flag); err != nil {
			wrapFatalln("mark required flag", err)
			return
		}
	}

	rootCmd.AddCommand(listCmd)
}
