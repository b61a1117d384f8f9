package domain

import "time"

// DateOf truncates a timestamp to its calendar date in UTC. Days, task
// schedules, and routine activations all key on these midnight-UTC values.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether two timestamps fall on the same UTC calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
