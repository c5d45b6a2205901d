// Package naming derives artifact paths from source filenames.
//
// Every source "<base>.<ext>" maps to "<outputDir>/<base>.jpg" and
// "<outputDir>/<base>.webp". Two sources that share a base name (logo.jpg
// and logo.png) would overwrite each other's artifacts, so [CollisionResolver]
// hands the later one a "-dupN" suffix for the whole run.
package naming
