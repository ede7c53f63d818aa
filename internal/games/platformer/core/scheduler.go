package core

import "sort"

type deferred struct {
	due   uint64
	seq   uint64
	epoch uint64
	fn    func()
}

// Scheduler runs deferred effects a number of ticks after they were
// scheduled. Every effect remembers the epoch it was scheduled in; bumping
// the epoch (level load, session reset) turns all pending effects into
// no-ops.
type Scheduler struct {
	now   uint64
	epoch uint64
	seq   uint64
	queue []deferred
}

// After schedules fn to run on the Advance that happens ticks from now.
// Delays below one tick are treated as one tick.
func (s *Scheduler) After(ticks int, fn func()) {
	if ticks < 1 {
		ticks = 1
	}
	s.seq++
	s.queue = append(s.queue, deferred{
		due:   s.now + uint64(ticks),
		seq:   s.seq,
		epoch: s.epoch,
		fn:    fn,
	})
}

// Bump starts a new epoch.
func (s *Scheduler) Bump() {
	s.epoch++
}

// Epoch returns the current epoch.
func (s *Scheduler) Epoch() uint64 {
	return s.epoch
}

// Pending returns the number of queued effects, stale ones included.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Advance moves time forward one tick and runs every due effect in
// scheduling order. An effect is checked against the current epoch right
// before it runs, so an effect that bumps the epoch cancels the ones after
// it. It returns the number of effects that ran.
func (s *Scheduler) Advance() int {
	s.now++

	var due []deferred
	rest := s.queue[:0]
	for _, d := range s.queue {
		if d.due <= s.now {
			due = append(due, d)
		} else {
			rest = append(rest, d)
		}
	}
	s.queue = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})

	ran := 0
	for _, d := range due {
		if d.epoch != s.epoch {
			continue
		}
		d.fn()
		ran++
	}
	return ran
}
