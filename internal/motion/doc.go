// Package motion names the word motions and composes a boundary scan for
// each one.
//
// A motion is applied to a single cursor head. Multi-cursor fan-out,
// anchors and repeat-last bookkeeping belong to the dispatcher handlers.
package motion
