// Package filter post-processes built state machines.
//
// The Engine evaluates filter rules over every state, collects the
// matching ids, and tags matches with attributes; it never removes
// anything. The PathFilter prunes a machine down to the path envelope
// of a selected state set: the minimal sub-machine whose states lie on
// some path from the starting state to a selected state. Composing the
// two — select with the Engine, prune with the PathFilter — is the
// caller's job.
//
// Both components leave their input machine untouched and return new
// instances.
package filter
