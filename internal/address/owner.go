package address

// Owner tags the kind of aggregate a command or move command belongs to. It is a
// weak back-reference: the containing aggregate holds the real ownership and sets the
// tag when the item is attached.
type Owner int

const (
	OwnerNone Owner = iota
	OwnerMapEvent
	OwnerCommonEvent
)

func (o Owner) String() string {
	switch o {
	case OwnerMapEvent:
		return "MapEvent"
	case OwnerCommonEvent:
		return "CommonEvent"
	}
	return "None"
}

// SelfVariableRange returns the band holding self variables for o. OwnerNone has no band.
func SelfVariableRange(o Owner) (Range, bool) {
	switch o {
	case OwnerMapEvent:
		return KindThisMapEventVariable.Range(), true
	case OwnerCommonEvent:
		return KindThisCommonEventVariable.Range(), true
	}
	return Range{}, false
}
