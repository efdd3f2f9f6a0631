package rume

import "reflect"

// processorPtr returns a stable identity for a processor instance.
// Processors are conventionally implemented on pointer receivers, so the
// interface value's underlying pointer is a legitimate identity — this
// mirrors the original design's use of shared-pointer equality for
// connection de-duplication, without needing Go's equivalent of
// Rc<RefCell<T>>.
//
// Only called at Build() time; never on the render hot path.
func processorPtr(p Processor) uintptr {
	return reflect.ValueOf(p).Pointer()
}
