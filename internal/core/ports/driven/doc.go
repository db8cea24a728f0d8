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
//   - RepoSearcher: Finds repositories matching a project idea (backend or GitHub)
//   - Summarizer: Produces a short summary for one repository (backend or LLM)
//   - Assistant: Answers one chat message (backend or LLM)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Only needed when summaries or chat use the llm provider.
//   - PromptStore: Customisable prompt templates. LLM adapters fall back to built-in prompts.
//   - HealthChecker: Connectivity checks reported by `idealens settings ping`.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
