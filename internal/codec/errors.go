package codec

import "errors"

var (
	ErrInvalidEncoding  = errors.New("payload is not valid UTF-8 text")
	ErrMalformedMessage = errors.New("malformed discovery message")
	ErrUnknownKind      = errors.New("unknown message kind")
	ErrReservedName     = errors.New("name contains a reserved message tag")
)
