// Package retrieval ranks stored chunks against a query and assembles
// token-budgeted contexts.
//
// Search runs in two phases per graph. The coarse phase scores every
// node against the query embedding and keeps the best few. The fine phase
// re-chunks those nodes' text with a small budget, embeds the pieces and
// scores them again.
package retrieval
