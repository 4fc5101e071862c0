// Package assist implements the two LLM collaborators that bracket a
// query: intent extraction before the sources are fetched and answer
// synthesis after the events are gathered. Both run over any
// driven.LLMService and degrade with typed collaborator errors rather
// than failing the query outright.
package assist
