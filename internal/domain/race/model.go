package race

import "time"

// Race is one grand prix weekend on the season calendar.
type Race struct {
	ID         string
	Season     int
	Round      int
	Name       string
	Circuit    string
	Country    string
	SprintDate *time.Time
	GPDate     time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasSprint reports whether the weekend runs a premier-class sprint.
func (r Race) HasSprint() bool {
	return r.SprintDate != nil
}

// Deadline is the lineup lock time: the first session of the weekend
// that scores, which is the sprint when there is one.
func (r Race) Deadline() time.Time {
	if r.SprintDate != nil {
		return *r.SprintDate
	}
	return r.GPDate
}

// Finished reports whether the weekend's last scoring session has
// started by now.
func (r Race) Finished(now time.Time) bool {
	return !now.Before(r.GPDate)
}
