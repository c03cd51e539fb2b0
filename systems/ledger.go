package systems

// FloorLedger issues floor indices in spawn order, each exactly once
type FloorLedger struct {
	next   int
	issued int
}

// NewFloorLedger starts issuing at first
func NewFloorLedger(first int) *FloorLedger {
	return &FloorLedger{next: first}
}

// Next consumes and returns the next index
func (l *FloorLedger) Next() int {
	f := l.next
	l.next++
	l.issued++
	return f
}

// Peek returns the index the next call to Next will issue
func (l *FloorLedger) Peek() int { return l.next }

// Issued returns how many indices were handed out
func (l *FloorLedger) Issued() int { return l.issued }

// Highest returns the last issued index, or first-1 before any
func (l *FloorLedger) Highest() int { return l.next - 1 }
