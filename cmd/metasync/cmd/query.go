// Copyright © 2021 One Concern

package cmd

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oneconcern/metasync/pkg/core"
	"github.com/oneconcern/metasync/pkg/model"
)

var queryCmd = &cobra.Command{
	Use:   "query [statement]",
	Short: "Run a query against the remote org",
	Long: `Run a query against the remote org and print the matching records.

Result pages are followed transparently: the full result set is printed
whatever its size. With --all, deleted and archived records are included.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		l := newLogger()
		gw := newGateway(l)

		run := core.Query
		if metasyncFlags.query.All {
			run = core.QueryAll
		}
		records, err := run(ctx, gw, args[0])
		if err != nil {
			wrapFatalln("query", err)
			return
		}

		for _, record := range records {
			infoLogger.Println(formatRecord(record))
		}
		infoLogger.Println(color.GreenString("%d records", len(records)))
	},
}

func formatRecord(record model.Record) string {
	parts := make([]string, 0, len(record.Fields)+2)
	parts = append(parts, record.Type)
	if record.ID != "" {
		parts = append(parts, "Id="+record.ID)
	}
	for _, field := range record.Fields {
		parts = append(parts, field.Name+"="+field.Value)
	}
	return strings.Join(parts, " ")
}

func init() {
	addQueryAllFlag(queryCmd)

	rootCmd.AddCommand(queryCmd)
}
