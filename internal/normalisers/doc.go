// Package normalisers turns local files into submittable text.
//
// Each subpackage implements driven.Normaliser for one family of formats.
// The Registry selects a normaliser by file extension and implements
// driving.TextExtractor for the CLI.
package normalisers
