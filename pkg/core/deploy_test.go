package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/metasync/pkg/errors"
	"github.com/oneconcern/metasync/pkg/model"
	pollstatus "github.com/oneconcern/metasync/pkg/poll/status"
	"github.com/oneconcern/metasync/pkg/session"
)

func TestDeploy(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "deploy", result: model.AsyncResult{ID: "0Af", State: "Queued"}},
		{op: "checkDeployStatus", result: model.DeployResult{ID: "0Af", Status: "Queued"}},
		{op: "checkDeployStatus", result: model.DeployResult{ID: "0Af", Status: "InProgress"}},
		{op: "checkDeployStatus", result: model.DeployResult{
			ID: "0Af", Status: "Succeeded", Done: true, Success: true,
			NumberComponentsDeployed: 3, NumberComponentsTotal: 3,
		}},
	}}

	options := model.DeployOptions{RollbackOnError: true, SinglePackage: true}
	res, err := Deploy(context.Background(), gw, "UEsDBA==", options, fastPoll()...)
	require.NoError(t, err)
	require.True(t, gw.exhausted())
	assert.Equal(t, "0Af", res.ID)
	assert.Equal(t, 3, res.NumberComponentsDeployed)

	req, ok := gw.recorded[0].in.(model.DeployRequest)
	require.True(t, ok)
	// archive blob and options pass through verbatim
	assert.Equal(t, "UEsDBA==", req.ZipFile)
	assert.Equal(t, options, req.Options)
	assert.Equal(t, session.ServiceMetadata, gw.recorded[0].svc)
}

func TestDeployFailureSurfacesDetail(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "deploy", result: model.AsyncResult{ID: "0Af"}},
		{op: "checkDeployStatus", result: model.DeployResult{
			ID: "0Af", Status: "Failed", Done: true,
			ErrorStatusCode: "UNKNOWN_EXCEPTION", ErrorMessage: "element missing",
		}},
	}}

	_, err := Deploy(context.Background(), gw, "UEsDBA==", model.DeployOptions{}, fastPoll()...)
	require.Error(t, err)
	require.True(t, errors.Is(err, pollstatus.ErrUnexpectedStatus))
	assert.Contains(t, err.Error(), "UNKNOWN_EXCEPTION: element missing")
}

func TestDeployCanceled(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "deploy", result: model.AsyncResult{ID: "0Af", State: "Queued"}},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Deploy(ctx, gw, "UEsDBA==", model.DeployOptions{}, PollInterval(time.Hour))
	require.True(t, errors.Is(err, context.Canceled))
}

func TestAwaitDeploy(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "checkDeployStatus", result: model.DeployResult{ID: "0Af", Status: "InProgress"}},
		{op: "checkDeployStatus", result: model.DeployResult{ID: "0Af", Status: "Succeeded", Done: true, Success: true}},
	}}
	res, err := AwaitDeploy(context.Background(), gw, "0Af", fastPoll()...)
	require.NoError(t, err)
	require.True(t, gw.exhausted())
	assert.True(t, res.Success)

	req, ok := gw.recorded[0].in.(model.CheckDeployStatusRequest)
	require.True(t, ok)
	assert.Equal(t, "0Af", req.AsyncProcessID)
}

func TestDeployRecentValidation(t *testing.T) {
	gw := &fakeGateway{t: t, script: []step{
		{op: "deployRecentValidation", result: "0Af000000001"},
	}}
	id, err := DeployRecentValidation(context.Background(), gw, "0AfVal")
	require.NoError(t, err)
	require.Equal(t, "0Af000000001", id)

	req, ok := gw.recorded[0].in.(model.DeployRecentValidationRequest)
	require.True(t, ok)
	require.Equal(t, "0AfVal", req.ValidationID)
}
