// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Converts text to fixed-length vectors (Cohere)
//   - VectorStore: Collection management, upsert and similarity search (Qdrant)
//   - LLMService: Grounded answer generation (Gemini)
//   - Fetcher: HTTP page retrieval for crawling and extraction
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - DocumentStore: Local record of indexed pages and ingest runs.
//     When nil, ingestion still works; `askdocs docs` has nothing to show.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
