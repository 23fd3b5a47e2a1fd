package events

// EventData is the interface all typed event payloads implement, tying each
// payload to its event type at compile time.
type EventData interface {
	EventType() EventType
}

// AllocationComputedData contains data for AllocationComputed events.
type AllocationComputedData struct {
	ScenarioID     int     `json:"scenario_id"`
	SharingPercent float64 `json:"sharing_percent"`
	Policy         string  `json:"policy"`
	TaxThreshold   float64 `json:"tax_threshold"`
	Parity         float64 `json:"parity"`
	AllMet         bool    `json:"all_met"`
}

// EventType returns the event type for AllocationComputedData.
func (d *AllocationComputedData) EventType() EventType {
	return AllocationComputed
}

// LevelCompletedData contains data for LevelCompleted events.
type LevelCompletedData struct {
	ScenarioID int    `json:"scenario_id"`
	ClaimCode  string `json:"claim_code"`
}

// EventType returns the event type for LevelCompletedData.
func (d *LevelCompletedData) EventType() EventType {
	return LevelCompleted
}

// SettingsChangedData contains data for SettingsChanged events.
type SettingsChangedData struct {
	ScenarioID int `json:"scenario_id"`
}

// EventType returns the event type for SettingsChangedData.
func (d *SettingsChangedData) EventType() EventType {
	return SettingsChanged
}

// RevenueEventDrawnData contains data for RevenueEventDrawn events.
type RevenueEventDrawnData struct {
	ScenarioID int     `json:"scenario_id"`
	Team       string  `json:"team"`
	Delta      float64 `json:"delta"`
	Headline   string  `json:"headline"`
}

// EventType returns the event type for RevenueEventDrawnData.
func (d *RevenueEventDrawnData) EventType() EventType {
	return RevenueEventDrawn
}

// ProgressResetData contains data for ProgressReset events.
type ProgressResetData struct {
	LevelsCleared int `json:"levels_cleared"`
}

// EventType returns the event type for ProgressResetData.
func (d *ProgressResetData) EventType() EventType {
	return ProgressReset
}
