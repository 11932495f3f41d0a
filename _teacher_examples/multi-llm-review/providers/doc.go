// Package providers implements AI provider adapters (OpenAI, Anthropic, Google)
// that wrap official SDK clients and implement the CodeReviewer interface.
package providers
