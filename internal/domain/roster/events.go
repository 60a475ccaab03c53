package roster

// Listener receives change notifications. Within a batch each event fires at
// most once, when the outermost EndUpdate runs.
type Listener interface {
	OnDataChanged()
	OnSubstitutesCountChanged(count int)
	OnReservesCountChanged(count int)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	DataChanged             func()
	SubstitutesCountChanged func(count int)
	ReservesCountChanged    func(count int)
}

func (f ListenerFuncs) OnDataChanged() {
	if f.DataChanged != nil {
		f.DataChanged()
	}
}

func (f ListenerFuncs) OnSubstitutesCountChanged(count int) {
	if f.SubstitutesCountChanged != nil {
		f.SubstitutesCountChanged(count)
	}
}

func (f ListenerFuncs) OnReservesCountChanged(count int) {
	if f.ReservesCountChanged != nil {
		f.ReservesCountChanged(count)
	}
}

type subscription struct {
	id       int
	listener Listener
}

// Subscribe registers l and returns a func that removes it again.
func (m *Model) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}
	m.nextSubID++
	id := m.nextSubID
	m.listeners = append(m.listeners, subscription{id: id, listener: l})
	return func() {
		for i, s := range m.listeners {
			if s.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// BeginUpdate defers notifications until the matching EndUpdate. Calls nest.
func (m *Model) BeginUpdate() {
	m.depth++
}

func (m *Model) EndUpdate() {
	if m.depth == 0 {
		return
	}
	m.depth--
	if m.depth == 0 {
		m.flush()
	}
}

func (m *Model) InUpdate() bool {
	return m.depth > 0
}

func (m *Model) touch() {
	m.dirty = true
	if m.depth == 0 {
		m.flush()
	}
}

func (m *Model) flush() {
	if !m.dirty {
		return
	}
	m.dirty = false

	subs := m.SubstituteCount()
	reserves := len(m.reserves)
	subsChanged := subs != m.notifiedSubs
	reservesChanged := reserves != m.notifiedReserves
	m.notifiedSubs = subs
	m.notifiedReserves = reserves

	listeners := append([]subscription(nil), m.listeners...)
	for _, s := range listeners {
		s.listener.OnDataChanged()
		if subsChanged {
			s.listener.OnSubstitutesCountChanged(subs)
		}
		if reservesChanged {
			s.listener.OnReservesCountChanged(reserves)
		}
	}
}
