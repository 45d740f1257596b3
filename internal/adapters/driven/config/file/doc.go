// Package file provides the TOML-backed ConfigStore.
//
// Values are addressed by dot keys ("search.max_tokens") and written back as
// nested TOML tables, so ~/.folio/config.toml stays hand-editable.
package file
