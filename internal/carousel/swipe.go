package carousel

import "github.com/hammamikhairi/healthmate/internal/domain"

// SwipeThreshold is the displacement, in units, a drag must strictly exceed
// before it counts as a swipe.
const SwipeThreshold = 100

// SwipeDetector turns one pointer contact into at most one navigation intent.
//
// It is a two-state machine: idle and dragging. Start enters dragging, Move
// only updates the offset, and End always returns to idle with the offset
// reset to zero.
//
// The mapping follows the "pull the top card away" metaphor: dragging right
// past the threshold yields IntentPrevious, dragging left yields IntentNext.
type SwipeDetector struct {
	startX   int
	offset   int
	dragging bool
}

// Start records the contact point and begins a drag. A second Start while
// dragging restarts the gesture from the new point.
func (d *SwipeDetector) Start(x int) {
	d.startX = x
	d.offset = 0
	d.dragging = true
}

// Move updates the signed horizontal offset. Ignored when idle.
func (d *SwipeDetector) Move(x int) {
	if !d.dragging {
		return
	}
	d.offset = x - d.startX
}

// End finishes the contact. It reports an intent only when a drag was in
// progress and its offset exceeded the threshold.
func (d *SwipeDetector) End() (domain.IntentType, bool) {
	if !d.dragging {
		return domain.IntentUnknown, false
	}
	offset := d.offset
	d.dragging = false
	d.offset = 0

	switch {
	case offset > SwipeThreshold:
		return domain.IntentPrevious, true
	case offset < -SwipeThreshold:
		return domain.IntentNext, true
	}
	return domain.IntentUnknown, false
}

// Offset returns the live displacement, for visual feedback only.
func (d *SwipeDetector) Offset() int { return d.offset }

// Dragging reports whether a contact is in progress.
func (d *SwipeDetector) Dragging() bool { return d.dragging }
