// Package indexer embeds chunks and assembles retrieval graphs.
//
// Node identity is derived from the chunk text, so indexing the same text
// again yields the same node ID and hash.
package indexer
