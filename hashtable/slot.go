package hashtable

type slotState uint8

const (
	empty slotState = iota
	occupied
	deleted
)

var slotStateNames = [...]string{
	empty:    "empty",
	occupied: "occupied",
	deleted:  "deleted",
}

func (st slotState) String() string {
	if int(st) < len(slotStateNames) {
		return slotStateNames[st]
	}
	return "invalid"
}

// slot is one storage cell; key and value are only meaningful while occupied.
type slot[K comparable, V any] struct {
	state slotState
	key   K
	value V
}

func (sl *slot[K, V]) fill(key K, value V) {
	sl.state = occupied
	sl.key = key
	sl.value = value
}

// replace swaps in a new value, returning the old one.
func (sl *slot[K, V]) replace(value V) (prev V) {
	prev, sl.value = sl.value, value
	return prev
}

// take marks the slot deleted, returning its value and zeroing its key and
// value so that they may be collected.
func (sl *slot[K, V]) take() (value V) {
	value = sl.value
	*sl = slot[K, V]{state: deleted}
	return value
}
