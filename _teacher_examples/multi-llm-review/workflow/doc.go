// Package workflow implements the LangGraph-Go based workflow orchestration
// for multi-LLM code review. It contains state management, node definitions,
// and graph wiring logic.
package workflow
