// Package domain defines the core business entities for siteassist.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ChatMessage and Conversation: the two-phase chat transcript
//   - KnowledgeDocument: a description document held by the backend
//   - Product: a catalogue entry held by the backend
//   - ClassifiedURLSet: description and product URL lists awaiting processing
//   - ProcessStatus: the independent outcome of one processing submission
//
// Validation that happens before a request is made (text length, price,
// URL syntax) lives here so every surface applies the same rules.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
