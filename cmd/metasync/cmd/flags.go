// Copyright © 2021 One Concern

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/oneconcern/metasync/pkg/mlogger"
	"github.com/oneconcern/metasync/pkg/model"
)

type flagsT struct {
	auth struct {
		Username      string
		Password      string
		SecurityToken string
		LoginEndpoint string
		APIVersion    float64
	}
	retrieve struct {
		Manifest string
		Dest     string
	}
	deploy struct {
		Source          string
		Manifest        string
		Validate        bool
		RollbackOnError bool
		PurgeOnDelete   bool
		TestLevel       string
		RunTests        []string
		ValidationID    string
	}
	job struct {
		PollInterval time.Duration
		MaxChecks    int
	}
	list struct {
		Types    []string
		Folder   string
		Manifest string
	}
	query struct {
		All bool
	}
	manifest struct {
		Source   string
		Output   string
		Deletion bool
	}
	root struct {
		logLevel string
	}
}

var metasyncFlags = flagsT{}

func addLogLevelFlag(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&metasyncFlags.root.logLevel, loglevel, mlogger.LogLevelInfo,
		"The logging level, one of: info, debug, none")
	return loglevel
}

func addUsernameFlag(cmd *cobra.Command) string {
	username := "username"
	cmd.PersistentFlags().StringVar(&metasyncFlags.auth.Username, username, "", "The user name to log in with")
	return username
}

func addPasswordFlag(cmd *cobra.Command) string {
	password := "password"
	cmd.PersistentFlags().StringVar(&metasyncFlags.auth.Password, password, "", "The password to log in with")
	return password
}

func addSecurityTokenFlag(cmd *cobra.Command) string {
	token := "security-token"
	cmd.PersistentFlags().StringVar(&metasyncFlags.auth.SecurityToken, token, "",
		"The security token appended to the password, when the org requires one")
	return token
}

func addLoginEndpointFlag(cmd *cobra.Command) string {
	endpoint := "endpoint"
	cmd.PersistentFlags().StringVar(&metasyncFlags.auth.LoginEndpoint, endpoint, "",
		"The login endpoint. Defaults to the production login URL, use the sandbox URL for test orgs")
	return endpoint
}

func addAPIVersionFlag(cmd *cobra.Command) string {
	apiversion := "api-version"
	cmd.PersistentFlags().Float64Var(&metasyncFlags.auth.APIVersion, apiversion, model.DefaultAPIVersion,
		"The API version to negotiate with the server")
	return apiversion
}

func addRetrieveManifestFlag(cmd *cobra.Command) string {
	manifest := "manifest"
	cmd.Flags().StringVar(&metasyncFlags.retrieve.Manifest, manifest, "package.xml",
		"The manifest listing the artifacts to retrieve")
	return manifest
}

func addDestFlag(cmd *cobra.Command) string {
	destination := "destination"
	cmd.Flags().StringVar(&metasyncFlags.retrieve.Dest, destination, "src",
		"The directory the retrieved source tree is extracted to")
	return destination
}

func addSourceFlag(cmd *cobra.Command, target *string) string {
	source := "source"
	cmd.Flags().StringVar(target, source, "src", "The source tree directory")
	return source
}

func addDeployManifestFlag(cmd *cobra.Command) string {
	manifest := "manifest"
	cmd.Flags().StringVar(&metasyncFlags.deploy.Manifest, manifest, "",
		"The manifest selecting what to deploy. Defaults to the package.xml found in the source tree")
	return manifest
}

func addValidateFlag(cmd *cobra.Command) string {
	validate := "validate"
	cmd.Flags().BoolVar(&metasyncFlags.deploy.Validate, validate, false,
		"Validate the deployment server-side without committing it")
	return validate
}

func addRollbackFlag(cmd *cobra.Command) string {
	rollback := "rollback-on-error"
	cmd.Flags().BoolVar(&metasyncFlags.deploy.RollbackOnError, rollback, true,
		"Roll the whole deployment back when any component fails")
	return rollback
}

func addPurgeOnDeleteFlag(cmd *cobra.Command) string {
	purge := "purge-on-delete"
	cmd.Flags().BoolVar(&metasyncFlags.deploy.PurgeOnDelete, purge, false,
		"Permanently delete removed components instead of moving them to the recycle bin")
	return purge
}

func addTestLevelFlag(cmd *cobra.Command) string {
	testlevel := "test-level"
	cmd.Flags().StringVar(&metasyncFlags.deploy.TestLevel, testlevel, "",
		"The test level for the deployment, e.g. RunSpecifiedTests")
	return testlevel
}

func addRunTestsFlag(cmd *cobra.Command) string {
	runtests := "run-tests"
	cmd.Flags().StringSliceVar(&metasyncFlags.deploy.RunTests, runtests, nil,
		"Test classes to run when the test level is RunSpecifiedTests")
	return runtests
}

func addValidationIDFlag(cmd *cobra.Command) string {
	validation := "validation-id"
	cmd.Flags().StringVar(&metasyncFlags.deploy.ValidationID, validation, "",
		"The job id of the validated deployment to promote")
	return validation
}

func addPollIntervalFlag(cmd *cobra.Command) string {
	interval := "poll-interval"
	cmd.Flags().DurationVar(&metasyncFlags.job.PollInterval, interval, 5*time.Second,
		"The delay between two server-side job status checks")
	return interval
}

func addMaxChecksFlag(cmd *cobra.Command) string {
	maxchecks := "max-checks"
	cmd.Flags().IntVar(&metasyncFlags.job.MaxChecks, maxchecks, 0,
		"Abandon the job after this many status checks (0 means no limit)")
	return maxchecks
}

func addListTypesFlag(cmd *cobra.Command) string {
	types := "type"
	cmd.Flags().StringSliceVar(&metasyncFlags.list.Types, types, nil,
		"An artifact type to list, repeatable")
	return types
}

func addListFolderFlag(cmd *cobra.Command) string {
	folder := "folder"
	cmd.Flags().StringVar(&metasyncFlags.list.Folder, folder, "",
		"Restrict the listing to a folder, for foldered types")
	return folder
}

func addListManifestFlag(cmd *cobra.Command) string {
	manifest := "manifest-out"
	cmd.Flags().StringVar(&metasyncFlags.list.Manifest, manifest, "",
		"Write the listing as a manifest to this path instead of printing it")
	return manifest
}

func addQueryAllFlag(cmd *cobra.Command) string {
	all := "all"
	cmd.Flags().BoolVar(&metasyncFlags.query.All, all, false,
		"Include deleted and archived records in the results")
	return all
}

func addManifestOutputFlag(cmd *cobra.Command) string {
	output := "output"
	cmd.Flags().StringVar(&metasyncFlags.manifest.Output, output, "package.xml",
		"The path the generated manifest is written to")
	return output
}

func addManifestDeletionFlag(cmd *cobra.Command) string {
	deletion := "deletion"
	cmd.Flags().BoolVar(&metasyncFlags.manifest.Deletion, deletion, false,
		"Generate a deletion manifest (destructive changes) instead of a package manifest")
	return deletion
}
