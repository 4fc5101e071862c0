// Package services implements the driving port interfaces.
// Services contain the core business logic: source registry validation,
// the per-query aggregation fan-out, and the query pipeline state machine.
//
// Services are pure Go with no external dependencies beyond the ports
// they orchestrate.
package services
