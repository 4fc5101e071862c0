// Package extractors provides implementations of the Extractor interface
// for the supported source formats. Each extractor knows how to pull raw
// event records out of one family of fetch kinds.
//
// Extractors are registered with the Registry at startup.
package extractors
