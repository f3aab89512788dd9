// Copyright © 2021 One Concern

package cmd

import (
	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/core"
	"github.com/oneconcern/metasync/pkg/mlogger"
	"github.com/oneconcern/metasync/pkg/session"
	"github.com/oneconcern/metasync/pkg/soap"
)

func newLogger() *zap.Logger {
	l, err := mlogger.New(metasyncFlags.root.logLevel)
	if err != nil {
		wrapFatalln("set log level", err)
		return nil
	}
	return l
}

// newGateway assembles the authenticated gateway from flags and config
func newGateway(l *zap.Logger) *session.Gateway {
	creds := session.Credentials{
		Username:      metasyncFlags.auth.Username,
		Password:      metasyncFlags.auth.Password,
		SecurityToken: metasyncFlags.auth.SecurityToken,
	}
	if creds.Username == "" || creds.Password == "" {
		wrapFatalln("credentials are required: set username and password via flags, config file or environment", nil)
		return nil
	}
	opts := []session.Option{
		session.Logger(l),
		session.APIVersion(metasyncFlags.auth.APIVersion),
	}
	if metasyncFlags.auth.LoginEndpoint != "" {
		opts = append(opts, session.LoginEndpoint(metasyncFlags.auth.LoginEndpoint))
	}
	return session.New(soap.New(soap.Logger(l)), creds, opts...)
}

func jobOptions(l *zap.Logger) []core.Option {
	return []core.Option{
		core.Logger(l),
		core.PollInterval(metasyncFlags.job.PollInterval),
		core.MaxPollChecks(metasyncFlags.job.MaxChecks),
	}
}
