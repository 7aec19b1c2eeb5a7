package emit

// NullEmitter discards every event. Use it when observability output is not
// wanted; it is safe for concurrent use and has no overhead.
type NullEmitter struct{}

// NewNullEmitter creates a NullEmitter.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(Event) {}
