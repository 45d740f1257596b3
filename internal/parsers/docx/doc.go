// Package docx parses Office Open XML word processing files into documents.
package docx
