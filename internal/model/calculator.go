package model

// LoadStatus summarizes how heavily a plan uses the container.
type LoadStatus struct {
	Instances      int     `json:"instances"`       // number of placed boxes
	TotalWeightKg  float64 `json:"total_weight_kg"` // sum of per-box weight snapshots
	MaxWeightKg    float64 `json:"max_weight_kg"`   // payload limit used for the check
	TotalVolumeM3  float64 `json:"total_volume_m3"` // sum of placed box volumes
	MaxVolumeM3    float64 `json:"max_volume_m3"`   // volume limit used for the check
	ContainerM3    float64 `json:"container_m3"`    // geometric container volume
	WeightPercent  float64 `json:"weight_percent"`
	VolumePercent  float64 `json:"volume_percent"`
	FillPercent    float64 `json:"fill_percent"` // share of the geometric volume
	Overweight     bool    `json:"overweight"`
	OverVolume     bool    `json:"over_volume"`
	UnplacedBoxes  int     `json:"unplaced_boxes"`
	RequestedBoxes int     `json:"requested_boxes"`
}

// cubicMMPerM3 is the number of cubic millimetres in one cubic metre.
const cubicMMPerM3 = 1e9

// CalculateLoadStatus computes weight and volume totals for a plan. Weight is
// accumulated per placed instance from the snapshot taken at placement time.
func CalculateLoadStatus(plan Plan, settings Settings) LoadStatus {
	status := LoadStatus{
		Instances:   len(plan.Instances),
		MaxWeightKg: settings.MaxWeightKg,
		MaxVolumeM3: settings.MaxVolumeM3,
		ContainerM3: plan.Container.Volume() / cubicMMPerM3,
	}

	var volume float64
	for _, inst := range plan.Instances {
		status.TotalWeightKg += inst.Weight
		volume += inst.Volume()
	}
	status.TotalVolumeM3 = volume / cubicMMPerM3

	for _, t := range plan.Types {
		status.RequestedBoxes += t.Qty
		status.UnplacedBoxes += t.Left()
	}

	if status.MaxWeightKg > 0 {
		status.WeightPercent = status.TotalWeightKg / status.MaxWeightKg * 100
		status.Overweight = status.TotalWeightKg > status.MaxWeightKg
	}
	if status.MaxVolumeM3 > 0 {
		status.VolumePercent = status.TotalVolumeM3 / status.MaxVolumeM3 * 100
		status.OverVolume = status.TotalVolumeM3 > status.MaxVolumeM3
	}
	if status.ContainerM3 > 0 {
		status.FillPercent = status.TotalVolumeM3 / status.ContainerM3 * 100
	}
	return status
}
