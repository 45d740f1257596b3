// Package tokenizer counts the LLM token cost of text.
//
// The approximate counter needs no data files. The tiktoken counter is
// exact for OpenAI's p50k_base encoding and loads its ranks on first use.
package tokenizer
