package autopilot

import (
	"context"
	"sync"
	"time"
)

// Status is a snapshot of the flag.
type Status struct {
	Engaged     bool        `yaml:"engaged" json:"engaged"`
	LastCommand CommandType `yaml:"last_command,omitempty" json:"last_command,omitempty"`
	ChangedAt   time.Time   `yaml:"changed_at,omitempty" json:"changed_at,omitempty"`
}

// Switch holds the autopilot flag. It never touches the dynamics; a
// subscriber sees every applied command as a Status.
type Switch struct {
	mu     sync.Mutex
	status Status
	subs   map[chan Status]struct{}
}

func NewSwitch(initial Status) *Switch {
	return &Switch{
		status: initial,
		subs:   map[chan Status]struct{}{},
	}
}

func (s *Switch) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Switch) Engaged() bool {
	return s.Status().Engaged
}

// Apply handles one command and publishes the result. Slow subscribers
// drop updates.
func (s *Switch) Apply(cmd Command) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Type() {
	case CmdOn:
		s.status.Engaged = true
	case CmdOff:
		s.status.Engaged = false
	case CmdToggle:
		s.status.Engaged = !s.status.Engaged
	}
	s.status.LastCommand = cmd.Type()
	s.status.ChangedAt = cmd.ReceivedAt()

	for ch := range s.subs {
		select {
		case ch <- s.status:
		default:
		}
	}
	return s.status
}

// Subscribe returns a channel of status updates. The channel is closed
// when ctx is done or the returned cancel func is called.
func (s *Switch) Subscribe(ctx context.Context) (<-chan Status, func()) {
	ch := make(chan Status, 8)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	unsub := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			close(ch)
			s.mu.Unlock()
			close(done)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-done:
		}
	}()

	return ch, unsub
}
