package notify

import "sync"

// Recorder keeps every notification in memory and pings subscribers when a
// new one arrives.
type Recorder struct {
	mu        sync.RWMutex
	items     []Notification
	listeners map[chan Notification]struct{}
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{listeners: make(map[chan Notification]struct{})}
}

func (r *Recorder) Success(msg string) { r.add(newNotification(LevelSuccess, msg)) }
func (r *Recorder) Warning(msg string) { r.add(newNotification(LevelWarning, msg)) }

func (r *Recorder) add(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	for ch := range r.listeners {
		select {
		case ch <- n:
		default:
			// Listener is behind; it can catch up through All.
		}
	}
}

// All returns a copy of every recorded notification, oldest first.
func (r *Recorder) All() []Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the newest notification. ok is false when none was recorded.
func (r *Recorder) Last() (n Notification, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Reset forgets every recorded notification.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.items = nil
	r.mu.Unlock()
}

// Subscribe returns a channel receiving each new notification.
// The caller must call Unsubscribe when done.
func (r *Recorder) Subscribe() chan Notification {
	ch := make(chan Notification, 8)
	r.mu.Lock()
	r.listeners[ch] = struct{}{}
	r.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (r *Recorder) Unsubscribe(ch chan Notification) {
	r.mu.Lock()
	delete(r.listeners, ch)
	r.mu.Unlock()
	close(ch)
}
