// Package planner decides, per source image, the target dimensions and the
// artifact paths, and builds a FilePlan that the encode package consumes.
//
// Resizing follows "fit inside, never enlarge": an image larger than the
// bounding box in either dimension is scaled down uniformly so both
// dimensions fit; anything smaller is kept at its native size.
package planner
