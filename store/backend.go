// Package store persists candidates, job postings and applications.
//
// Storage is split in two layers: a Backend moves opaque records in and out
// of named collections, and typed repositories encode records and answer
// retrieval queries on top of any Backend.
package store

import (
	"context"
)

// Collection names.
const (
	CollectionCandidates   = "candidates"
	CollectionJobs         = "jobs"
	CollectionApplications = "applications"
)

// Backend is the capability the repositories need from a document store.
// Get and Delete return a *errors.DocumentNotFoundError for unknown ids.
type Backend interface {
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Put(ctx context.Context, collection, id string, data []byte) error
	Delete(ctx context.Context, collection, id string) error
	// Scan calls fn for every record of collection in ascending id order.
	// Returning an error from fn stops the scan and is returned by Scan.
	Scan(ctx context.Context, collection string, fn func(id string, data []byte) error) error
	Close() error
}
