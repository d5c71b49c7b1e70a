// Package boundary walks snapshot text one character pair at a time until a
// predicate reports a boundary between the pair.
//
// A Scanner is stateless apart from its classifier and scope resolver, so a
// single Scanner may serve any number of concurrent scans. Each call to Scan
// allocates its own State, which is the only mutable data a predicate sees.
//
// Offsets handed to Scan must lie within the snapshot and on a rune
// boundary. Anything else is a caller bug and panics with a *PositionError.
package boundary
