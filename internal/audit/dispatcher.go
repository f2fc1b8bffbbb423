package audit

import "log/slog"

type Event struct {
	AdminUserID *uint
	Action      ActionType
	Resource    ResourceType
	ResourceID  uint
	Description string
	Changes     *Changes
	IPAddress   string
	RequestID   string
}

// Dispatcher decouples audit writes from the request path. Best-effort: a
// full queue or a storage fault drops the entry with a log line and never
// fails the admin operation that triggered it.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	log    *slog.Logger
}

func NewDispatcher(logger *Logger, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.AdminUserID,
			ev.Action,
			ev.Resource,
			ev.ResourceID,
			ev.Description,
			ev.Changes,
			ev.IPAddress,
			ev.RequestID,
		); err != nil {
			d.log.Error("audit write failed", "err", err, "action", string(ev.Action))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", string(ev.Action))
	}
}
