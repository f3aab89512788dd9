// Copyright © 2021 One Concern

package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/core/status"
	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/session"
)

// Query runs a query and accumulates every page of records, following the
// server's locator until it reports the result set done
func Query(ctx context.Context, gw Invoker, soql string, opts ...Option) ([]model.Record, error) {
	return pagedQuery(ctx, gw, "query", soql, opts...)
}

// QueryAll behaves like Query but includes deleted and archived records
func QueryAll(ctx context.Context, gw Invoker, soql string, opts ...Option) ([]model.Record, error) {
	return pagedQuery(ctx, gw, "queryAll", soql, opts...)
}

func pagedQuery(ctx context.Context, gw Invoker, op, soql string, opts ...Option) ([]model.Record, error) {
	s := defaultSettings(opts...)

	var res model.QueryResult
	var in interface{}
	if op == "queryAll" {
		in = model.QueryAllRequest{QueryString: soql}
	} else {
		in = model.QueryRequest{QueryString: soql}
	}
	if err := gw.Invoke(ctx, session.ServiceData, op, in, &res); err != nil {
		return nil, err
	}
	records := res.Records

	for !res.Done {
		locator := res.QueryLocator
		if locator == "" {
			return nil, status.ErrQueryPaging.WrapMessage("operation %s", op)
		}
		s.l.Debug("fetching next query page",
			zap.String("locator", locator),
			zap.Int("records", len(records)))
		res = model.QueryResult{}
		err := gw.Invoke(ctx, session.ServiceData, "queryMore",
			model.QueryMoreRequest{QueryLocator: locator}, &res)
		if err != nil {
			return nil, err
		}
		records = append(records, res.Records...)
	}
	return records, nil
}
