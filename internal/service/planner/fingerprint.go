package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

type fingerprintInput struct {
	Subjects       []domain.Subject `json:"subjects"`
	TotalHours     float64          `json:"total_hours"`
	StudyDays      []domain.Day     `json:"study_days"`
	WarnAboveHours float64          `json:"warn_above_hours"`
}

// fingerprint keys the plan cache. Order matters for both subjects and days
// since both shape the output.
func fingerprint(in *validatedRequest, warnAboveHours float64) (string, error) {
	payload, err := json.Marshal(fingerprintInput{
		Subjects:       in.subjects,
		TotalHours:     in.totalHours,
		StudyDays:      in.studyDays,
		WarnAboveHours: warnAboveHours,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode plan fingerprint: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
