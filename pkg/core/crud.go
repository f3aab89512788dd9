// Copyright © 2021 One Concern

package core

import (
	"context"

	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/session"
)

// saveBatch is the vendor API limit on records per create/update/delete/
// undelete call
const saveBatch = 200

// Create inserts records, batching them within the vendor limit. Results
// come back in input order, one per record.
func Create(ctx context.Context, gw Invoker, records []model.Record) ([]model.SaveResult, error) {
	results := make([]model.SaveResult, 0, len(records))
	for _, chunk := range recordBatches(records) {
		var page []model.SaveResult
		if err := gw.Invoke(ctx, session.ServiceData, "create", model.CreateRequest{Records: chunk}, &page); err != nil {
			return nil, err
		}
		results = append(results, page...)
	}
	return results, nil
}

// Update updates records, batching them within the vendor limit
func Update(ctx context.Context, gw Invoker, records []model.Record) ([]model.SaveResult, error) {
	results := make([]model.SaveResult, 0, len(records))
	for _, chunk := range recordBatches(records) {
		var page []model.SaveResult
		if err := gw.Invoke(ctx, session.ServiceData, "update", model.UpdateRequest{Records: chunk}, &page); err != nil {
			return nil, err
		}
		results = append(results, page...)
	}
	return results, nil
}

// Delete deletes records by id, batching them within the vendor limit
func Delete(ctx context.Context, gw Invoker, ids []string) ([]model.SaveResult, error) {
	results := make([]model.SaveResult, 0, len(ids))
	for _, chunk := range idBatches(ids) {
		var page []model.SaveResult
		if err := gw.Invoke(ctx, session.ServiceData, "delete", model.DeleteRequest{IDs: chunk}, &page); err != nil {
			return nil, err
		}
		results = append(results, page...)
	}
	return results, nil
}

// Undelete restores records by id, batching them within the vendor limit
func Undelete(ctx context.Context, gw Invoker, ids []string) ([]model.SaveResult, error) {
	results := make([]model.SaveResult, 0, len(ids))
	for _, chunk := range idBatches(ids) {
		var page []model.SaveResult
		if err := gw.Invoke(ctx, session.ServiceData, "undelete", model.UndeleteRequest{IDs: chunk}, &page); err != nil {
			return nil, err
		}
		results = append(results, page...)
	}
	return results, nil
}

func recordBatches(records []model.Record) [][]model.Record {
	var out [][]model.Record
	for start := 0; start < len(records); start += saveBatch {
		end := start + saveBatch
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[start:end])
	}
	return out
}

func idBatches(ids []string) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += saveBatch {
		end := start + saveBatch
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
