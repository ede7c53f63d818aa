package core

// Binding is a logical key the simulation reads.
type Binding int

const (
	MoveLeft Binding = iota
	MoveRight
	Jump
	bindingCount
)

func (b Binding) String() string {
	switch b {
	case MoveLeft:
		return "move-left"
	case MoveRight:
		return "move-right"
	case Jump:
		return "jump"
	default:
		return "unknown"
	}
}

// InputView is what the simulation asks about input each frame.
//
// Held is level-triggered. Pressed is edge-triggered: it reports true on
// the first query while the key is down and false afterwards, until the key
// is released and pressed again.
type InputView interface {
	Held(b Binding) bool
	Pressed(b Binding) bool
}

// Keys is the standard InputView. Hosts call Press and Release as key
// state changes; repeated Press calls while the key is down are ignored.
type Keys struct {
	down     [bindingCount]bool
	consumed [bindingCount]bool
}

// Press marks the key as down.
func (k *Keys) Press(b Binding) {
	if b < 0 || b >= bindingCount {
		return
	}
	k.down[b] = true
}

// Release marks the key as up and re-arms its Pressed edge.
func (k *Keys) Release(b Binding) {
	if b < 0 || b >= bindingCount {
		return
	}
	k.down[b] = false
	k.consumed[b] = false
}

// Held reports whether the key is down.
func (k *Keys) Held(b Binding) bool {
	if b < 0 || b >= bindingCount {
		return false
	}
	return k.down[b]
}

// Pressed reports a fresh key-down, once.
func (k *Keys) Pressed(b Binding) bool {
	if !k.Held(b) || k.consumed[b] {
		return false
	}
	k.consumed[b] = true
	return true
}

// ReleaseAll releases every key.
func (k *Keys) ReleaseAll() {
	*k = Keys{}
}
