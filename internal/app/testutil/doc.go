// Package testutil provides mocks shared by the package tests: a
// provider.Transcriber, the transcription service used by the HTTP
// handlers, and an object store for the staging layer.
//
// All mocks embed testify's mock.Mock; use the New* constructors so
// unexpected calls fail the owning test.
package testutil
