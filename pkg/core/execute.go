// Copyright © 2021 One Concern

package core

import (
	"context"

	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/session"
)

// ExecuteAnonymous compiles and runs a block of code server-side. The
// result reports compilation and execution outcome; a failed run is not an
// error at this level, callers inspect the result.
func ExecuteAnonymous(ctx context.Context, gw Invoker, code string) (model.ExecuteAnonymousResult, error) {
	var res model.ExecuteAnonymousResult
	err := gw.Invoke(ctx, session.ServiceData, "executeAnonymous",
		model.ExecuteAnonymousRequest{Code: code}, &res)
	if err != nil {
		return model.ExecuteAnonymousResult{}, err
	}
	return res, nil
}
