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
//   - DocumentSource: Lists notes and reads their text
//   - LinkIndex: Outgoing links and the resolved-link table
//   - VaultOpener: Opens a vault root as a DocumentSource and LinkIndex
//   - Tokenizer: Deterministic lexical tokenization
//   - PhraseExtractor: Key phrase detection
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AnalysisStore: Snapshot persistence. Without it, history is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or tokenizer package
package driven
