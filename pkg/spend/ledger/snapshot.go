package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/voxlane/costguard/pkg/spend/window"
)

// Snapshot is the persisted form of the ledger state.
//
// All six fields are required when present; an absent snapshot is
// treated as all-zero state at the current windows. The daily limit is
// configuration, not accounting history, so it is not part of the
// snapshot.
type Snapshot struct {
	// DailyTotal is the aggregate cost for DailyWindow (USD).
	DailyTotal float64 `json:"daily_total"`

	// DailyByService maps service names to cost for DailyWindow (USD).
	DailyByService map[string]float64 `json:"daily_by_service"`

	// DailyWindow is the calendar day DailyTotal covers.
	DailyWindow window.Window `json:"daily_window"`

	// MonthlyTotal is the aggregate cost for MonthlyWindow (USD).
	MonthlyTotal float64 `json:"monthly_total"`

	// MonthlyByService maps service names to cost for MonthlyWindow (USD).
	MonthlyByService map[string]float64 `json:"monthly_by_service"`

	// MonthlyWindow is the calendar month MonthlyTotal covers.
	MonthlyWindow window.Window `json:"monthly_window"`
}

// encodeSnapshot serializes a snapshot for the storage layer.
func encodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ledger snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot deserializes a snapshot loaded from the storage layer.
func decodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal ledger snapshot: %w", err)
	}
	if s.DailyByService == nil {
		s.DailyByService = make(map[string]float64)
	}
	if s.MonthlyByService == nil {
		s.MonthlyByService = make(map[string]float64)
	}
	return s, nil
}
