package model

import "time"

// SafetyFunctionStatus tracks the validation lifecycle of a safety function.
type SafetyFunctionStatus string

const (
	SFStatusDraft      SafetyFunctionStatus = "draft"
	SFStatusInProgress SafetyFunctionStatus = "in_progress"
	SFStatusValidated  SafetyFunctionStatus = "validated"
	SFStatusRejected   SafetyFunctionStatus = "rejected"
)

// Performance levels per ISO 13849, ordered a < b < c < d < e. The ordering
// is lexicographic, so plain string comparison is the compliance check.
const (
	PLa = "a"
	PLb = "b"
	PLc = "c"
	PLd = "d"
	PLe = "e"
)

// PLMeets reports whether an achieved performance level satisfies the
// required one. A nil achieved level never satisfies anything.
func PLMeets(achieved *string, required string) bool {
	return achieved != nil && *achieved >= required
}

// SafetyFunction is a safety function of a machine (e.g. an emergency stop),
// analysed against ISO 13849. PLAchieved, Category, ValidatedBy and
// ValidatedAt are nil until the analysis or validation fills them in.
type SafetyFunction struct {
	ID          string               `json:"id"`
	MachineID   string               `json:"machineId"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Type        string               `json:"type"`
	PLRequired  string               `json:"plRequired"`
	PLAchieved  *string              `json:"plAchieved"`
	Category    *int                 `json:"category"`
	Standards   []string             `json:"standards"`
	Status      SafetyFunctionStatus `json:"status"`
	ValidatedBy *string              `json:"validatedBy"`
	ValidatedAt *time.Time           `json:"validatedAt"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// SafetyFunctionPatch carries the fields of a partial safety-function update.
type SafetyFunctionPatch struct {
	MachineID   *string               `json:"machineId"`
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Type        *string               `json:"type"`
	PLRequired  *string               `json:"plRequired"`
	PLAchieved  *string               `json:"plAchieved"`
	Category    *int                  `json:"category"`
	Standards   []string              `json:"standards"`
	Status      *SafetyFunctionStatus `json:"status"`
	ValidatedBy *string               `json:"validatedBy"`
	ValidatedAt *time.Time            `json:"validatedAt"`
}
