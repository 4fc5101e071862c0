// Package normalisers provides implementations of the EventNormaliser
// interface. A normaliser turns one raw scraped record into the canonical
// event shape, including best-effort date parsing.
package normalisers
