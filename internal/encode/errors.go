package encode

import "errors"

// Stage sentinels. Every error returned by Execute wraps exactly one of them
// alongside the underlying cause, so callers can use errors.Is for either.
var (
	ErrRead   = errors.New("read failed")
	ErrDecode = errors.New("decode failed")
	ErrEncode = errors.New("encode failed")
	ErrWrite  = errors.New("write failed")
)

// Classify returns a short label for the pipeline stage err came from.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRead):
		return "read"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEncode):
		return "encode"
	case errors.Is(err, ErrWrite):
		return "write"
	default:
		return "unknown"
	}
}
