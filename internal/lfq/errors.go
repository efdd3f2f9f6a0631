package lfq

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates the operation cannot proceed immediately: the
// queue is full (Enqueue) or empty (Dequeue). It is a control flow signal,
// not a failure, and callers on the audio thread must never retry in a
// loop — drop or hold the previous value instead.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}
