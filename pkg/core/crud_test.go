package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/metasync/pkg/model"
)

func saveOK(n int) []model.SaveResult {
	out := make([]model.SaveResult, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.SaveResult{ID: fmt.Sprintf("001%03d", i), Success: true})
	}
	return out
}

func TestCreateBatching(t *testing.T) {
	records := make([]model.Record, 0, 450)
	for i := 0; i < 450; i++ {
		records = append(records, account(fmt.Sprintf("acct-%d", i)))
	}

	gw := &fakeGateway{t: t, script: []step{
		{op: "create", result: saveOK(200)},
		{op: "create", result: saveOK(200)},
		{op: "create", result: saveOK(50)},
	}}

	results, err := Create(context.Background(), gw, records)
	require.NoError(t, err)
	require.True(t, gw.exhausted())
	require.Len(t, results, 450)

	// 450 records split into vendor-sized batches
	sizes := make([]int, 0, 3)
	for _, call := range gw.recorded {
		req, ok := call.in.(model.CreateRequest)
		require.True(t, ok)
		sizes = append(sizes, len(req.Records))
	}
	require.Equal(t, []int{200, 200, 50}, sizes)
}

func TestUpdateReportsRecordErrors(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "update", result: []model.SaveResult{
			{ID: "001A", Success: true},
			{Success: false, Errors: []model.SaveError{
				{StatusCode: "REQUIRED_FIELD_MISSING", Message: "missing Name"},
			}},
		}},
	}}

	results, err := Update(context.Background(), gw, []model.Record{account("Acme"), {Type: "Account"}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "REQUIRED_FIELD_MISSING", results[1].Errors[0].StatusCode)
}

func TestDeleteUndeleteBatching(t *testing.T) {
	ids := make([]string, 0, 201)
	for i := 0; i < 201; i++ {
		ids = append(ids, fmt.Sprintf("001%03d", i))
	}

	gw := &fakeGateway{t: t, script: []step{
		{op: "delete", result: saveOK(200)},
		{op: "delete", result: saveOK(1)},
	}}
	results, err := Delete(context.Background(), gw, ids)
	require.NoError(t, err)
	require.Len(t, results, 201)
	first, ok := gw.recorded[0].in.(model.DeleteRequest)
	require.True(t, ok)
	require.Len(t, first.IDs, 200)

	gw = &fakeGateway{t: t, script: []step{
		{op: "undelete", result: saveOK(2)},
	}}
	results, err = Undelete(context.Background(), gw, []string{"001A", "001B"})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestExecuteAnonymous(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "executeAnonymous", result: model.ExecuteAnonymousResult{Compiled: true, Success: true}},
	}}
	res, err := ExecuteAnonymous(context.Background(), gw, "System.debug('hi');")
	require.NoError(t, err)
	require.True(t, res.Success)

	req, ok := gw.recorded[0].in.(model.ExecuteAnonymousRequest)
	require.True(t, ok)
	require.Equal(t, "System.debug('hi');", req.Code)
}
