package session

import "sync"

// Store is a mutable container around State. The zero value is not usable;
// use NewStore.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: InitialState()}
}

// NewStoreWithState seeds a store, mainly for tests.
func NewStoreWithState(s State) *Store {
	return &Store{state: s.Clone()}
}

// Dispatch reduces a into the current state and returns a snapshot of the result.
func (st *Store) Dispatch(a Action) (State, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	next, err := Reduce(st.state, a)
	if err != nil {
		return st.state.Clone(), err
	}
	st.state = next
	return next.Clone(), nil
}

// Snapshot returns a copy of the current state.
func (st *Store) Snapshot() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state.Clone()
}
