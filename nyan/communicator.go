package nyan

// slot is one direction of a half-duplex mailbox.
type slot struct {
	filled bool
	value  int64
}

// Communicator is the two-slot mailbox implementing one port between two
// scripts. It generalizes the teacher's single-slot Controller strobe/index
// protocol into two independent directions, matching the filled/empty flag
// design the original interpreter's Communicator class uses.
type Communicator struct {
	a, b *Script
	aToB slot
	bToA slot
}

// NewCommunicator creates a Communicator shared by endpoints a and b.
func NewCommunicator(a, b *Script) *Communicator {
	return &Communicator{a: a, b: b}
}

func (c *Communicator) outbound(endpoint *Script) *slot {
	if endpoint == c.a {
		return &c.aToB
	}
	return &c.bToA
}

func (c *Communicator) inbound(endpoint *Script) *slot {
	if endpoint == c.a {
		return &c.bToA
	}
	return &c.aToB
}

// Send writes v into the slot leaving endpoint, overwriting any unconsumed
// value already there (final design per the resolved full-slot question).
func (c *Communicator) Send(endpoint *Script, v int64) {
	s := c.outbound(endpoint)
	s.value = v
	s.filled = true
}

// Receive reads the slot arriving at endpoint. ok is false if the slot is
// empty; a successful receive clears the slot.
func (c *Communicator) Receive(endpoint *Script) (v int64, ok bool) {
	s := c.inbound(endpoint)
	if !s.filled {
		return 0, false
	}
	s.filled = false
	return s.value, true
}

// Peer returns the other endpoint of this Communicator.
func (c *Communicator) Peer(endpoint *Script) *Script {
	if endpoint == c.a {
		return c.b
	}
	return c.a
}
