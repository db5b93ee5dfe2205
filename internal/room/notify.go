package room

import "sync"

// notifier fans out change signals to subscribers of a room. Signals
// coalesce: a slow subscriber sees one pending signal, not a backlog.
type notifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[chan struct{}]struct{})}
}

func (n *notifier) subscribe(roomID string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	if n.subs[roomID] == nil {
		n.subs[roomID] = make(map[chan struct{}]struct{})
	}
	n.subs[roomID][ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if set, ok := n.subs[roomID]; ok {
				if _, ok := set[ch]; ok {
					delete(set, ch)
					close(ch)
				}
				if len(set) == 0 {
					delete(n.subs, roomID)
				}
			}
		})
	}
}

func (n *notifier) notify(roomID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[roomID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// closeRoom closes every subscription to roomID.
func (n *notifier) closeRoom(roomID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[roomID] {
		close(ch)
	}
	delete(n.subs, roomID)
}
