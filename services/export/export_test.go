package export

import "time"

// SetClock overrides the timestamp source for deterministic file names.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
