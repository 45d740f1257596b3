// Package domain holds the types every other folio package shares:
//
//   - Document and its Node tree, with source positions
//   - RetrievalGraph and IndexNode, the embedded chunks of one document
//   - Context, a scored passage returned by search
//   - DocumentRecord, the catalog entry that tracks index state
//   - AppSettings and the sentinel errors
//
// It imports the standard library only.
package domain
