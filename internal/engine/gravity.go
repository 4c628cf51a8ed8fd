package engine

import "github.com/piwi3910/LoadPlan/internal/model"

// RestingZ returns the height at which a footprint of length x width placed
// at (x, y) comes to rest: the highest top among placed instances whose
// footprint strictly overlaps it, or 0 on the floor. Headroom is not
// checked here.
func (l *Layout) RestingZ(x, y, length, width float64, exclude ...model.InstanceID) float64 {
	probe := model.Box{X: x, Y: y, Length: length, Width: width}
	var z float64
	for _, inst := range l.instances {
		if excluded(inst.ID, exclude) {
			continue
		}
		if probe.FootprintIntersects(inst.Box) {
			z = max(z, inst.MaxZ())
		}
	}
	return z
}
