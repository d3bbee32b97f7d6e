package model

import "time"

// MachineStatus describes the operational state of a machine.
type MachineStatus string

const (
	StatusOperational MachineStatus = "operational"
	StatusMaintenance MachineStatus = "maintenance"
	StatusOffline     MachineStatus = "offline"
)

// Machine represents a physical machine attached to a project.
type Machine struct {
	ID                  string        `json:"id"`
	ProjectID           string        `json:"projectId"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Model               string        `json:"model"`
	SerialNumber        string        `json:"serialNumber"`
	Manufacturer        string        `json:"manufacturer"`
	YearOfManufacture   int           `json:"yearOfManufacture"`
	Status              MachineStatus `json:"status"`
	LastMaintenanceDate time.Time     `json:"lastMaintenanceDate"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// MachinePatch carries the fields of a partial machine update. Nil fields are
// left untouched.
type MachinePatch struct {
	ProjectID           *string        `json:"projectId"`
	Name                *string        `json:"name"`
	Description         *string        `json:"description"`
	Model               *string        `json:"model"`
	SerialNumber        *string        `json:"serialNumber"`
	Manufacturer        *string        `json:"manufacturer"`
	YearOfManufacture   *int           `json:"yearOfManufacture"`
	Status              *MachineStatus `json:"status"`
	LastMaintenanceDate *time.Time     `json:"lastMaintenanceDate"`
}
