package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no parser handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Indexing and search are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Pipeline Errors.

	// ErrParseFailure indicates a malformed container or an unsupported
	// embedded construct (structured data tags, tables of contents).
	ErrParseFailure = errors.New("parse failure")

	// ErrEmptyDocument indicates the document engine produced no text runs.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEmbeddingFailure indicates the embedding capability failed or
	// returned a vector of the wrong dimension.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrSerializationFailure indicates a document or graph artifact
	// could not be encoded or decoded.
	ErrSerializationFailure = errors.New("serialization failure")
)
