package ledger

import "time"

// SetClock replaces the time source of s.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
