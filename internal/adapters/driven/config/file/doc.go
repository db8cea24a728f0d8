// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the IdeaLens config directory (~/.idealens).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage with environment fallbacks
//   - PromptStore: user-editable LLM prompt templates
package file
