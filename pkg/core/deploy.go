// Copyright © 2021 One Concern

package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/poll"
	"github.com/oneconcern/metasync/pkg/session"
)

// Deploy submits a zipped package (base64 encoded, as produced by the
// archive collaborator) and polls the deployment to completion. The deploy
// options are passed through to the server verbatim.
//
// The terminal result carries the job id: a deployment run with
// options.CheckOnly can be promoted afterwards with DeployRecentValidation.
func Deploy(ctx context.Context, gw Invoker, zipB64 string, options model.DeployOptions, opts ...Option) (model.DeployResult, error) {
	s := defaultSettings(opts...)
	req := model.DeployRequest{ZipFile: zipB64, Options: options}

	job := poll.Job{
		Start: func(ctx context.Context) (string, error) {
			var ack model.AsyncResult
			if err := gw.Invoke(ctx, session.ServiceMetadata, "deploy", req, &ack); err != nil {
				return "", err
			}
			s.l.Info("deploy submitted",
				zap.String("job_id", ack.ID),
				zap.String("state", ack.State),
				zap.Bool("check_only", options.CheckOnly))
			return ack.ID, nil
		},
		Check: checkDeploy(gw),
	}

	payload, err := poll.Wait(ctx, job, s.pollOptions()...)
	if err != nil {
		return model.DeployResult{}, err
	}
	return payload.(model.DeployResult), nil
}

// AwaitDeploy polls an already submitted deployment job to completion
func AwaitDeploy(ctx context.Context, gw Invoker, jobID string, opts ...Option) (model.DeployResult, error) {
	s := defaultSettings(opts...)
	job := poll.Job{
		Start: func(context.Context) (string, error) {
			return jobID, nil
		},
		Check: checkDeploy(gw),
	}
	payload, err := poll.Wait(ctx, job, s.pollOptions()...)
	if err != nil {
		return model.DeployResult{}, err
	}
	return payload.(model.DeployResult), nil
}

func checkDeploy(gw Invoker) func(ctx context.Context, id string) (poll.Result, error) {
	return func(ctx context.Context, id string) (poll.Result, error) {
		var res model.DeployResult
		err := gw.Invoke(ctx, session.ServiceMetadata, "checkDeployStatus",
			model.CheckDeployStatusRequest{AsyncProcessID: id, IncludeDetails: true}, &res)
		if err != nil {
			return poll.Result{}, err
		}
		switch {
		case model.JobInProgress(res.Status):
			return poll.Result{State: res.Status, Message: res.StateDetail}, nil
		case res.Status == model.JobStateSucceeded:
			return poll.Result{State: res.Status, Terminal: true, Success: true, Payload: res}, nil
		default:
			return poll.Result{State: res.Status, Terminal: true, Message: deployFailureDetail(res)}, nil
		}
	}
}

// DeployRecentValidation promotes an already validated deployment (a
// successful check-only run with tests) without re-running its tests.
// It returns the id of the promoted deployment.
func DeployRecentValidation(ctx context.Context, gw Invoker, validationID string) (string, error) {
	var id string
	err := gw.Invoke(ctx, session.ServiceMetadata, "deployRecentValidation",
		model.DeployRecentValidationRequest{ValidationID: validationID}, &id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// deployFailureDetail picks the most specific server message available
func deployFailureDetail(res model.DeployResult) string {
	switch {
	case res.ErrorMessage != "" && res.ErrorStatusCode != "":
		return res.ErrorStatusCode + ": " + res.ErrorMessage
	case res.ErrorMessage != "":
		return res.ErrorMessage
	default:
		return res.StateDetail
	}
}
