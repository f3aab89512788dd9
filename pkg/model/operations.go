// Copyright © 2021 One Concern

package model

import "encoding/xml"

// Typed request and response records for every remote operation the client
// consumes. Requests carry their operation element name in XMLName so the
// transport adapter can frame them without knowing the operation surface.

// SessionHeader authenticates a call with the current session token
type SessionHeader struct {
	XMLName   xml.Name `xml:"SessionHeader"`
	SessionID string   `xml:"sessionId"`
}

// LoginRequest obtains a fresh session. The password field concatenates the
// account password and the API security token when one is required.
type LoginRequest struct {
	XMLName  xml.Name `xml:"login"`
	Username string   `xml:"username"`
	Password string   `xml:"password"`
}

// LoginResult carries the session token and the per-org service endpoints
type LoginResult struct {
	ServerURL         string `xml:"serverUrl"`
	MetadataServerURL string `xml:"metadataServerUrl"`
	SessionID         string `xml:"sessionId"`
	UserID            string `xml:"userId"`
}

// RetrieveRequest submits a retrieval job for the given package
type RetrieveRequest struct {
	XMLName xml.Name     `xml:"retrieve"`
	Request RetrieveSpec `xml:"retrieveRequest"`
}

// RetrieveSpec is the nested body of a retrieve submission
type RetrieveSpec struct {
	APIVersion    string      `xml:"apiVersion"`
	SinglePackage bool        `xml:"singlePackage"`
	Unpackaged    PackageSpec `xml:"unpackaged"`
}

// PackageSpec is the server-shaped type/member manifest structure
type PackageSpec struct {
	Types   []PackageTypeMembers `xml:"types"`
	Version string               `xml:"version"`
}

// PackageTypeMembers lists the members requested for one metadata type
type PackageTypeMembers struct {
	Name    string   `xml:"name"`
	Members []string `xml:"members"`
}

// AsyncResult acknowledges a submitted job
type AsyncResult struct {
	ID    string `xml:"id"`
	State string `xml:"state"`
	Done  bool   `xml:"done"`
}

// CheckRetrieveStatusRequest polls a retrieval job
type CheckRetrieveStatusRequest struct {
	XMLName        xml.Name `xml:"checkRetrieveStatus"`
	AsyncProcessID string   `xml:"asyncProcessId"`
}

// RetrieveResult is the terminal payload of a retrieval job. ZipFile stays
// base64 encoded: decoding belongs to the archive collaborator.
type RetrieveResult struct {
	ID              string            `xml:"id"`
	Done            bool              `xml:"done"`
	Status          string            `xml:"status"`
	Success         bool              `xml:"success"`
	ErrorMessage    string            `xml:"errorMessage"`
	ErrorStatusCode string            `xml:"errorStatusCode"`
	ZipFile         string            `xml:"zipFile"`
	FileProperties  []FileProperties  `xml:"fileProperties"`
	Messages        []RetrieveMessage `xml:"messages"`
}

// RetrieveMessage is a per-file warning attached to a retrieval result
type RetrieveMessage struct {
	FileName string `xml:"fileName"`
	Problem  string `xml:"problem"`
}

// DeployRequest submits a deployment job for a zipped package
type DeployRequest struct {
	XMLName xml.Name      `xml:"deploy"`
	ZipFile string        `xml:"ZipFile"`
	Options DeployOptions `xml:"DeployOptions"`
}

// DeployOptions is passed through verbatim to the server
type DeployOptions struct {
	AllowMissingFiles bool     `xml:"allowMissingFiles"`
	CheckOnly         bool     `xml:"checkOnly"`
	IgnoreWarnings    bool     `xml:"ignoreWarnings"`
	PurgeOnDelete     bool     `xml:"purgeOnDelete"`
	RollbackOnError   bool     `xml:"rollbackOnError"`
	SinglePackage     bool     `xml:"singlePackage"`
	TestLevel         string   `xml:"testLevel,omitempty"`
	RunTests          []string `xml:"runTests,omitempty"`
}

// CheckDeployStatusRequest polls a deployment job
type CheckDeployStatusRequest struct {
	XMLName        xml.Name `xml:"checkDeployStatus"`
	AsyncProcessID string   `xml:"asyncProcessId"`
	IncludeDetails bool     `xml:"includeDetails"`
}

// DeployResult is the server's view of a deployment job
type DeployResult struct {
	ID                       string `xml:"id"`
	Status                   string `xml:"status"`
	StateDetail              string `xml:"stateDetail"`
	Done                     bool   `xml:"done"`
	Success                  bool   `xml:"success"`
	CheckOnly                bool   `xml:"checkOnly"`
	ErrorMessage             string `xml:"errorMessage"`
	ErrorStatusCode          string `xml:"errorStatusCode"`
	NumberComponentsTotal    int    `xml:"numberComponentsTotal"`
	NumberComponentsDeployed int    `xml:"numberComponentsDeployed"`
	NumberComponentErrors    int    `xml:"numberComponentErrors"`
	NumberTestsTotal         int    `xml:"numberTestsTotal"`
	NumberTestsCompleted     int    `xml:"numberTestsCompleted"`
	NumberTestErrors         int    `xml:"numberTestErrors"`
}

// DeployRecentValidationRequest promotes a validated deployment without
// re-running its tests
type DeployRecentValidationRequest struct {
	XMLName      xml.Name `xml:"deployRecentValidation"`
	ValidationID string   `xml:"validationId"`
}

// ListMetadataRequest lists members of up to three type/folder queries
type ListMetadataRequest struct {
	XMLName     xml.Name            `xml:"listMetadata"`
	Queries     []ListMetadataQuery `xml:"queries"`
	AsOfVersion string              `xml:"asOfVersion"`
}

// ListMetadataQuery selects one metadata type, optionally within a folder
type ListMetadataQuery struct {
	Type   string `xml:"type"`
	Folder string `xml:"folder,omitempty"`
}

// FileProperties describes one artifact in a listing or retrieval result
type FileProperties struct {
	Type               string `xml:"type"`
	FullName           string `xml:"fullName"`
	FileName           string `xml:"fileName"`
	ID                 string `xml:"id"`
	CreatedByName      string `xml:"createdByName"`
	LastModifiedByName string `xml:"lastModifiedByName"`
	ManageableState    string `xml:"manageableState"`
}

// QueryRequest runs a query returning the first page of records
type QueryRequest struct {
	XMLName     xml.Name `xml:"query"`
	QueryString string   `xml:"queryString"`
}

// QueryAllRequest runs a query that includes deleted and archived records
type QueryAllRequest struct {
	XMLName     xml.Name `xml:"queryAll"`
	QueryString string   `xml:"queryString"`
}

// QueryMoreRequest fetches the next page for a query locator
type QueryMoreRequest struct {
	XMLName      xml.Name `xml:"queryMore"`
	QueryLocator string   `xml:"queryLocator"`
}

// QueryResult is one page of records. Done is false while the locator can
// fetch further pages.
type QueryResult struct {
	Done         bool     `xml:"done"`
	QueryLocator string   `xml:"queryLocator"`
	Size         int      `xml:"size"`
	Records      []Record `xml:"records"`
}

// CreateRequest inserts a batch of records
type CreateRequest struct {
	XMLName xml.Name `xml:"create"`
	Records []Record `xml:"sObjects"`
}

// UpdateRequest updates a batch of records
type UpdateRequest struct {
	XMLName xml.Name `xml:"update"`
	Records []Record `xml:"sObjects"`
}

// DeleteRequest deletes records by id
type DeleteRequest struct {
	XMLName xml.Name `xml:"delete"`
	IDs     []string `xml:"ids"`
}

// UndeleteRequest restores records by id
type UndeleteRequest struct {
	XMLName xml.Name `xml:"undelete"`
	IDs     []string `xml:"ids"`
}

// SaveResult reports the outcome for one record of a batched operation
type SaveResult struct {
	ID      string      `xml:"id"`
	Success bool        `xml:"success"`
	Errors  []SaveError `xml:"errors"`
}

// SaveError details one record-level failure
type SaveError struct {
	StatusCode string   `xml:"statusCode"`
	Message    string   `xml:"message"`
	Fields     []string `xml:"fields"`
}

// ExecuteAnonymousRequest compiles and runs a block of code server-side
type ExecuteAnonymousRequest struct {
	XMLName xml.Name `xml:"executeAnonymous"`
	Code    string   `xml:"String"`
}

// ExecuteAnonymousResult reports compilation and execution outcome
type ExecuteAnonymousResult struct {
	Compiled            bool   `xml:"compiled"`
	Success             bool   `xml:"success"`
	CompileProblem      string `xml:"compileProblem"`
	ExceptionMessage    string `xml:"exceptionMessage"`
	ExceptionStackTrace string `xml:"exceptionStackTrace"`
	Line                int    `xml:"line"`
	Column              int    `xml:"column"`
}
