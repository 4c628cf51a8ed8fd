package model

import "sort"

// FreeSpace is an empty rectangular region of the container that is still
// large enough to take cargo.
type FreeSpace struct {
	Label string `json:"label"`
	Box
}

// MinFreeDimension is the minimum extent (in mm) along every axis for an
// empty region to be reported. Thinner strips are treated as slack.
const MinFreeDimension = 100.0

// DetectFreeSpace reports the empty strips left around the loaded block: the
// rear strip behind the furthest box, the side strip beside the widest row and
// the headroom above the tallest stack. An empty plan reports the whole
// container. Regions are sorted by volume, largest first.
func DetectFreeSpace(plan Plan) []FreeSpace {
	c := plan.Container
	if len(plan.Instances) == 0 {
		return []FreeSpace{{
			Label: "Whole container",
			Box:   Box{Length: c.Length, Width: c.Width, Height: c.Height},
		}}
	}

	var maxX, maxY, maxZ float64
	for _, inst := range plan.Instances {
		if v := inst.MaxX(); v > maxX {
			maxX = v
		}
		if v := inst.MaxY(); v > maxY {
			maxY = v
		}
		if v := inst.MaxZ(); v > maxZ {
			maxZ = v
		}
	}

	candidates := []FreeSpace{
		{Label: "Rear", Box: Box{X: maxX, Length: c.Length - maxX, Width: c.Width, Height: c.Height}},
		{Label: "Side", Box: Box{Y: maxY, Length: maxX, Width: c.Width - maxY, Height: c.Height}},
		{Label: "Headroom", Box: Box{Z: maxZ, Length: maxX, Width: maxY, Height: c.Height - maxZ}},
	}

	var free []FreeSpace
	for _, fs := range candidates {
		if fs.Length >= MinFreeDimension && fs.Width >= MinFreeDimension && fs.Height >= MinFreeDimension {
			free = append(free, fs)
		}
	}

	sort.Slice(free, func(i, j int) bool {
		return free[i].Volume() > free[j].Volume()
	})
	return free
}

// TotalFreeVolume returns the total volume of the regions in cubic mm.
func TotalFreeVolume(regions []FreeSpace) float64 {
	var total float64
	for _, r := range regions {
		total += r.Volume()
	}
	return total
}
