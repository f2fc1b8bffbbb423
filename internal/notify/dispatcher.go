package notify

import "log/slog"

// Dispatcher runs notification work off the request path. Same contract as
// the audit queue: when full, the job is dropped with a log line.
type Dispatcher struct {
	queue chan func()
	log   *slog.Logger
}

func NewDispatcher(log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		queue: make(chan func(), 100),
		log:   log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for job := range d.queue {
		job()
	}
}

func (d *Dispatcher) Dispatch(job func()) {
	select {
	case d.queue <- job:
	default:
		d.log.Warn("notification queue full, dropping job")
	}
}
