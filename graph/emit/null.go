package emit

// NullDrain discards every event. Useful as the default drain when no
// observability backend is configured.
type NullDrain struct{}

// NewNullDrain creates a NullDrain.
func NewNullDrain() *NullDrain { return &NullDrain{} }

// Handle discards event.
func (n *NullDrain) Handle(event Event) {}
