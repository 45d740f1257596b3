package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/minio/highwayhash"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// graphHashKey keys the graph change hash. Changing it changes every
// stored graph hash.
var graphHashKey = []byte("folio/retrieval-graph/hash/key01")

// NodeID returns the name-based UUID of text, stable across runs.
func NodeID(text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(text)).String()
}

// ContentHash returns the hex SHA-256 digest of text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RankID records a chunk's ordinal within its document.
func RankID(reference string, ordinal int) string {
	return reference + "::" + strconv.Itoa(ordinal)
}

// GraphHash combines node hashes in chunk order into one 64-bit
// HighwayHash, so any edit, insertion or reordering changes it.
func GraphHash(nodes []domain.IndexNode) (string, error) {
	h, err := highwayhash.New64(graphHashKey)
	if err != nil {
		return "", fmt.Errorf("graph hash: %w", err)
	}
	for _, n := range nodes {
		h.Write([]byte(n.Hash))
		h.Write([]byte{0})
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}
