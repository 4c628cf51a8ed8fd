package engine

import "github.com/piwi3910/LoadPlan/internal/model"

// Collides reports whether box overlaps any placed instance other than the
// excluded ones. Overlap is strict on all three axes, so touching faces are
// allowed.
func (l *Layout) Collides(box model.Box, exclude ...model.InstanceID) bool {
	_, hit := l.firstCollision(box, exclude)
	return hit
}

// firstCollision returns the first placed instance overlapping box.
func (l *Layout) firstCollision(box model.Box, exclude []model.InstanceID) (model.InstanceID, bool) {
	for _, inst := range l.instances {
		if excluded(inst.ID, exclude) {
			continue
		}
		if box.Intersects(inst.Box) {
			return inst.ID, true
		}
	}
	return 0, false
}

func excluded(id model.InstanceID, exclude []model.InstanceID) bool {
	for _, e := range exclude {
		if e == id {
			return true
		}
	}
	return false
}
