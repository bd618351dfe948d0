package domain

import (
	"encoding/json"
	"fmt"

	apperrors "cafetalk/internal/platform/errors"
)

func EncodeState(s ProgressState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}

// EncodeSnapshot is the human-readable export form.
func EncodeSnapshot(s ProgressState) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeState parses a persisted blob or an imported snapshot. A missing
// level is derived from totalXP; any other invariant violation is rejected.
func DecodeState(data []byte) (ProgressState, error) {
	var s ProgressState
	if err := json.Unmarshal(data, &s); err != nil {
		return ProgressState{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err)
	}
	if s.Level == 0 {
		s.Level = LevelForXP(s.TotalXP)
	}
	s.fillDefaults()
	if err := s.Validate(); err != nil {
		return ProgressState{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidPayload, err)
	}
	return s, nil
}
