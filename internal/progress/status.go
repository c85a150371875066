// Package progress tracks which modules are completed and derives each
// module's lock state from catalog order.
package progress

// Status is a module's state relative to the learner. It is never stored;
// it is derived from the completed set on every read.
type Status int

const (
	StatusLocked    Status = iota // Previous module not completed
	StatusUnlocked                // Available but not completed
	StatusCompleted               // Completed and reachable
)

// Icon returns the display icon for a status.
func (s Status) Icon() string {
	switch s {
	case StatusLocked:
		return "🔒"
	case StatusUnlocked:
		return "📖"
	case StatusCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusLocked:
		return "Locked"
	case StatusUnlocked:
		return "Unlocked"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (s Status) String() string {
	return s.Label()
}

// Derive computes the status of every module given the catalog's IDs in
// order and the completed set. The first module is never locked; each later
// module is locked unless its predecessor is completed. An ID in the
// completed set whose predecessor is not completed still reports Locked.
func Derive(ids []string, completed map[string]bool) []Status {
	out := make([]Status, len(ids))
	prevDone := true
	for i, id := range ids {
		switch {
		case !prevDone:
			out[i] = StatusLocked
		case completed[id]:
			out[i] = StatusCompleted
		default:
			out[i] = StatusUnlocked
		}
		prevDone = out[i] == StatusCompleted
	}
	return out
}
