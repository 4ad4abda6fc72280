package domain

import "errors"

// Sentinel errors. Callers match them with errors.Is; producers wrap them
// with context via fmt.Errorf("...: %w", err).
var (
	// ErrNotFound indicates a source document or index file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidIndex indicates a malformed or incomplete index artifact.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrDimensionMismatch indicates a query vector and the stored chunk
	// vectors have different lengths. It is a configuration error, never a
	// "no match" condition.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrVocabularyMismatch indicates the query vectorizer was not built from
	// the vocabulary frozen in the index.
	ErrVocabularyMismatch = errors.New("vocabulary mismatch")

	// ErrChatUnavailable indicates the chat-completion collaborator is not configured.
	ErrChatUnavailable = errors.New("chat service unavailable")
)
