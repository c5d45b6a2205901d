// Package encode executes a FilePlan: decode the source once, resize once,
// then write one artifact per target format.
//
// Each artifact is encoded into a hidden temp file next to its destination
// and renamed into place, so a crash never leaves a truncated image under a
// final name. When a later target fails, artifacts already written for the
// same source are removed, together with any stale outputs of that source
// from an earlier run, unless the caller asks to keep them.
package encode
