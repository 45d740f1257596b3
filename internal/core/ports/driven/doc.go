// Package driven declares the capabilities the core calls out to.
//
// Parsing goes through ParserRegistry and DocumentParser, with PDFEngine
// decoding PDF containers into positioned runs. Chunker and Tokenizer split
// documents. ArtifactStore, DocumentCatalog and ConfigStore persist state.
//
// EmbeddingService, GraphIndexer and ContextRetriever may be nil when no
// embedding provider is configured; parse and chunk keep working.
package driven
