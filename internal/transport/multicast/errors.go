package multicast

import "errors"

var (
	ErrInvalidAddress = errors.New("not an IPv4 multicast address")
	ErrBindFailure    = errors.New("bind failure")
	ErrJoinFailure    = errors.New("join multicast group failure")
	ErrReceiveTimeout = errors.New("receive timeout")
	ErrClosed         = errors.New("transport is closed")
)
