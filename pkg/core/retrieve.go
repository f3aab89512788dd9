// Copyright © 2021 One Concern

package core

import (
	"context"

	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/core/status"
	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/poll"
	"github.com/oneconcern/metasync/pkg/session"
)

// Retrieve submits a retrieval job for the manifest's members and polls it
// to completion.
//
// The manifest is read once, as a snapshot, when the job is submitted:
// later mutation does not affect the in-flight job. The returned archive
// stays base64 encoded; decoding belongs to the archive collaborator.
func Retrieve(ctx context.Context, gw Invoker, m *model.Manifest, opts ...Option) (model.RetrieveResult, error) {
	s := defaultSettings(opts...)
	if m == nil || m.Empty() {
		return model.RetrieveResult{}, status.ErrEmptyManifest
	}
	req := model.RetrieveRequest{
		Request: model.RetrieveSpec{
			APIVersion:    model.FormatAPIVersion(m.APIVersion),
			SinglePackage: true,
			Unpackaged:    m.PackageSpec(),
		},
	}

	job := poll.Job{
		Start: func(ctx context.Context) (string, error) {
			var ack model.AsyncResult
			if err := gw.Invoke(ctx, session.ServiceMetadata, "retrieve", req, &ack); err != nil {
				return "", err
			}
			s.l.Info("retrieve submitted",
				zap.String("job_id", ack.ID),
				zap.Int("types", len(req.Request.Unpackaged.Types)))
			return ack.ID, nil
		},
		Check: func(ctx context.Context, id string) (poll.Result, error) {
			var res model.RetrieveResult
			err := gw.Invoke(ctx, session.ServiceMetadata, "checkRetrieveStatus",
				model.CheckRetrieveStatusRequest{AsyncProcessID: id}, &res)
			if err != nil {
				return poll.Result{}, err
			}
			switch {
			case model.JobInProgress(res.Status):
				return poll.Result{State: res.Status}, nil
			case res.Status == model.JobStateSucceeded:
				return poll.Result{State: res.Status, Terminal: true, Success: true, Payload: res}, nil
			default:
				return poll.Result{State: res.Status, Terminal: true, Message: res.ErrorMessage}, nil
			}
		},
	}

	payload, err := poll.Wait(ctx, job, s.pollOptions()...)
	if err != nil {
		return model.RetrieveResult{}, err
	}
	return payload.(model.RetrieveResult), nil
}
