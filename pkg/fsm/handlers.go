package fsm

// handlerList is an ordered subscription list. Dispatch iterates a snapshot,
// so handlers may unsubscribe (or subscribe others) while being called.
type handlerList[F any] struct {
	nextID  int
	entries []handlerEntry[F]
}

type handlerEntry[F any] struct {
	id int
	fn F
}

func (l *handlerList[F]) add(fn F) func() {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, handlerEntry[F]{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *handlerList[F]) snapshot() []F {
	if len(l.entries) == 0 {
		return nil
	}
	out := make([]F, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}
