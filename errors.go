package rume

import "errors"

// ErrCycleDetected is returned by Builder.Build when the accumulated
// connections describe a cycle. The original design this engine is based
// on left cycle detection unimplemented; a malformed graph would recurse
// forever or panic on an uninitialized read. This module treats that as
// a build-time error instead.
var ErrCycleDetected = errors.New("rume: cycle detected in signal chain")

// ErrEmptyChain is returned by Builder.Build when no processors have
// been registered.
var ErrEmptyChain = errors.New("rume: signal chain has no processors")
