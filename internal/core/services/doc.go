// Package services implements the driving ports on top of the driven ones.
//
// DocumentService runs ingestion: parse, chunk, index, then persist the
// document tree, its retrieval graph and a catalog record. SearchService
// loads stored graphs for ready documents and hands them to the retriever.
// SettingsService reads and writes the TOML-backed configuration.
package services
