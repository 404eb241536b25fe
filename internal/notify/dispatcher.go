package notify

import "log"

type saver interface {
	Save(ev Event) error
}

// Dispatcher decouples notification writes from the request path. Events
// go through a buffered channel to a single worker; when the queue is full
// the event is dropped rather than blocking a booking.
type Dispatcher struct {
	store saver
	queue chan Event
}

func NewDispatcher(store *Store) *Dispatcher {
	d := &Dispatcher{
		store: store,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.store.Save(ev); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}

var _ Notifier = (*Dispatcher)(nil)
