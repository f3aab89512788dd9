// Copyright © 2021 One Concern

package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/errors"
	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/model/status"
)

var manifestGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a manifest from a source tree",
	Long: `Generate a manifest from the files present in a local source tree.

Every recognized artifact file contributes a member under its type; files that do not
map to a known artifact type are skipped. With --deletion, the generated manifest
lists the members for removal instead of inclusion.`,
	Run: func(cmd *cobra.Command, args []string) {
		l := newLogger()
		fs := afero.NewOsFs()

		source := metasyncFlags.manifest.Source
		opts := []model.ManifestOption{
			model.APIVersion(metasyncFlags.auth.APIVersion),
			model.SourceDir(source),
		}
		if metasyncFlags.manifest.Deletion {
			opts = append(opts, model.ForDeletion())
		}
		m := model.NewManifest(opts...)

		err := afero.Walk(fs, source, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || filepath.Base(p) == "package.xml" {
				return nil
			}
			rel, err := filepath.Rel(source, p)
			if err != nil {
				return err
			}
			if err := m.AddFromPaths(filepath.ToSlash(rel)); err != nil {
				if errors.Is(err, status.ErrUnknownType) || errors.Is(err, status.ErrMalformedPath) {
					l.Debug("skipping unrecognized file", zap.String("path", rel))
					return nil
				}
				return err
			}
			return nil
		})
		if err != nil {
			wrapFatalln("scan source tree "+source, err)
			return
		}
		if m.Empty() {
			wrapFatalln("no recognized artifacts under "+source, nil)
			return
		}

		if err := m.WriteTo(fs, metasyncFlags.manifest.Output); err != nil {
			wrapFatalln("write manifest "+metasyncFlags.manifest.Output, err)
			return
		}
		infoLogger.Printf("manifest with %d types written to %s", len(m.Types()), metasyncFlags.manifest.Output)
	},
}

func init() {
	addSourceFlag(manifestGenerateCmd, &metasyncFlags.manifest.Source)
	addManifestOutputFlag(manifestGenerateCmd)
	addManifestDeletionFlag(manifestGenerateCmd)

	manifestCmd.AddCommand(manifestGenerateCmd)
}
