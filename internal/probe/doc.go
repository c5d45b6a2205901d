// Package probe reads image headers without decoding pixel data. It sniffs
// the magic number, then asks the registered decoders (JPEG, PNG, WebP) for
// the format and dimensions.
//
// The pipeline uses it to log source dimensions, to reject files whose bytes
// do not match a supported raster format before a full decode, and to read
// back the dimensions of written artifacts.
package probe
