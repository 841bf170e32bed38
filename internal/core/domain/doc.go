// Package domain defines the core business entities for askdocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies beyond the standard library (plus the
// uuid package for deterministic point identity) and defines the
// fundamental types:
//
//   - Page: Clean text extracted from a single URL
//   - Chunk: An overlapping slice of a page, the unit of indexing
//   - Query: A validated question with retrieval parameters
//   - RetrievalResult: Ranked chunks returned by a similarity search
//   - Answer: A grounded answer with source citations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
package domain
