// Copyright © 2021 One Concern

package core

import (
	"context"

	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/session"
)

// listMetadataBatch is the vendor API limit on type/folder queries per
// listMetadata call
const listMetadataBatch = 3

// ListMetadata lists the members of the given type/folder queries, batching
// them within the vendor limit. The result maps canonical type names to
// member names and merges directly into a manifest with AddGroups.
func ListMetadata(ctx context.Context, gw Invoker, queries []model.ListMetadataQuery, apiVersion float64) (map[string][]string, error) {
	groups := make(map[string][]string)
	for start := 0; start < len(queries); start += listMetadataBatch {
		end := start + listMetadataBatch
		if end > len(queries) {
			end = len(queries)
		}
		req := model.ListMetadataRequest{
			Queries:     queries[start:end],
			AsOfVersion: model.FormatAPIVersion(apiVersion),
		}
		var props []model.FileProperties
		if err := gw.Invoke(ctx, session.ServiceMetadata, "listMetadata", req, &props); err != nil {
			return nil, err
		}
		for _, p := range props {
			groups[p.Type] = append(groups[p.Type], p.FullName)
		}
	}
	return groups, nil
}
