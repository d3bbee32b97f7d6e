package model

import "time"

// SubComponentType classifies a sub-component within the sensor/logic/actuator
// chain of an SRP/CS.
type SubComponentType string

const (
	TypeSensor   SubComponentType = "sensor"
	TypeLogic    SubComponentType = "logic"
	TypeActuator SubComponentType = "actuator"
)

// SubComponent is one safety-related part of a safety function. The
// reliability parameters (MTTFd in years, DCavg and CCF in percent) and the
// architecture designation (e.g. "1oo2") are nil until they are assessed.
type SubComponent struct {
	ID               string           `json:"id"`
	SafetyFunctionID string           `json:"safetyFunctionId"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Type             SubComponentType `json:"type"`
	Category         *int             `json:"category"`
	MTTFd            *float64         `json:"mttfd"`
	DCavg            *float64         `json:"dcavg"`
	CCF              *float64         `json:"ccf"`
	Architecture     *string          `json:"architecture"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// SubComponentPatch carries the fields of a partial sub-component update.
type SubComponentPatch struct {
	SafetyFunctionID *string           `json:"safetyFunctionId"`
	Name             *string           `json:"name"`
	Description      *string           `json:"description"`
	Type             *SubComponentType `json:"type"`
	Category         *int              `json:"category"`
	MTTFd            *float64          `json:"mttfd"`
	DCavg            *float64          `json:"dcavg"`
	CCF              *float64          `json:"ccf"`
	Architecture     *string           `json:"architecture"`
}
