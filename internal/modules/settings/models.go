package settings

// ControlsUpdate is the request body for saving scenario controls.
type ControlsUpdate struct {
	SharingPercent float64 `json:"sharing_percent"`
	Policy         string  `json:"policy"`
	TaxThreshold   float64 `json:"tax_threshold"`
}

// ControlsResponse is the API shape of saved controls.
type ControlsResponse struct {
	ScenarioID     int     `json:"scenario_id"`
	SharingPercent float64 `json:"sharing_percent"`
	Policy         string  `json:"policy"`
	TaxThreshold   float64 `json:"tax_threshold"`
}
