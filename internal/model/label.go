package model

import "time"

// LabelEvent is one append-only record of a screenshot being assigned to a
// category. The processed folders remain the source of truth for resume;
// the event log exists for auditing the labeling session.
type LabelEvent struct {
	Screenshot string
	Category   Category
	BarIndex   int
	At         time.Time
}
