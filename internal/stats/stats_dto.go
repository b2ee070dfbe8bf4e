package stats

// Snapshot is the dashboard payload. Every known status is present, zero when empty.
type Snapshot struct {
	Ads                  map[string]int64 `json:"ads"`
	Employers            map[string]int64 `json:"employers"`
	PendingAdsWithoutMou int64            `json:"pending_ads_without_mou"`
}
