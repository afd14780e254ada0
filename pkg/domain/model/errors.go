package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for cohort operations
var (
	ErrRequestFailed  = goerr.New("cohort request failed")
	ErrCohortNotFound = goerr.New("cohort not found")
)

// Tags classifying why a request failed. All of them wrap ErrRequestFailed.
var (
	ErrTagHTTPStatus     = goerr.NewTag("http_status")
	ErrTagTransport      = goerr.NewTag("transport")
	ErrTagDecode         = goerr.NewTag("decode")
	ErrTagServerReported = goerr.NewTag("server_reported")
	ErrTagRedirect       = goerr.NewTag("redirect")
)
