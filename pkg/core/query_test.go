package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/metasync/pkg/core/status"
	"github.com/oneconcern/metasync/pkg/errors"
	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/session"
)

func account(name string) model.Record {
	return model.Record{Type: "Account", Fields: []model.FieldValue{{Name: "Name", Value: name}}}
}

func TestQueryPaging(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "query", result: model.QueryResult{
			Done: false, QueryLocator: "loc-1", Size: 3,
			Records: []model.Record{account("Acme"), account("Globex")},
		}},
		{op: "queryMore", result: model.QueryResult{
			Done: true, Size: 3,
			Records: []model.Record{account("Initech")},
		}},
	}}

	records, err := Query(context.Background(), gw, "SELECT Name FROM Account")
	require.NoError(t, err)
	require.True(t, gw.exhausted())
	require.Len(t, records, 3)
	assert.Equal(t, "Initech", records[2].Field("Name"))

	more, ok := gw.recorded[1].in.(model.QueryMoreRequest)
	require.True(t, ok)
	assert.Equal(t, "loc-1", more.QueryLocator)
	assert.Equal(t, session.ServiceData, gw.recorded[0].svc)
}

func TestQuerySinglePage(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "query", result: model.QueryResult{Done: true, Records: []model.Record{account("Acme")}}},
	}}
	records, err := Query(context.Background(), gw, "SELECT Name FROM Account")
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestQueryAll(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "queryAll", result: model.QueryResult{Done: true}},
	}}
	_, err := QueryAll(context.Background(), gw, "SELECT Name FROM Account")
	require.NoError(t, err)
	req, ok := gw.recorded[0].in.(model.QueryAllRequest)
	require.True(t, ok)
	require.Equal(t, "SELECT Name FROM Account", req.QueryString)
}

func TestQueryMissingLocator(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "query", result: model.QueryResult{Done: false}},
	}}
	_, err := Query(context.Background(), gw, "SELECT Name FROM Account")
	require.True(t, errors.Is(err, status.ErrQueryPaging))
}
