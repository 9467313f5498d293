package bulb

// Translate linearly remaps value from the interval [prevStart, prevEnd]
// onto [newStart, newEnd]. No clamping is applied: input outside the source
// interval maps proportionally outside the target interval. Callers must
// supply a source interval with distinct endpoints.
func Translate(value, prevStart, prevEnd, newStart, newEnd float64) float64 {
	prevSpan := prevEnd - prevStart
	newSpan := newEnd - newStart
	scaled := (value - prevStart) / prevSpan

	return newStart + scaled*newSpan
}
