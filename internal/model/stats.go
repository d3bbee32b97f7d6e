package model

// DashboardStats aggregates the dashboard counters computed over the current
// collections.
type DashboardStats struct {
	Projects        ProjectStats        `json:"projects"`
	Machines        MachineStats        `json:"machines"`
	SafetyFunctions SafetyFunctionStats `json:"safety_functions"`
}

// ProjectStats counts projects. Archived is a placeholder pending a real
// archival feature and is always zero.
type ProjectStats struct {
	Total    int                  `json:"total"`
	Active   int                  `json:"active"`
	Archived int                  `json:"archived"`
	ByStatus ProjectStatusBuckets `json:"by_status"`
}

// ProjectStatusBuckets splits projects by lifecycle status. The split is a
// fixed proportion of the total, not derived from project attributes; the
// business definition is still pending.
type ProjectStatusBuckets struct {
	Draft      int `json:"draft"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Archived   int `json:"archived"`
}

// MachineStats counts machines. The risk buckets are a fixed proportion of
// the total, not derived from machine attributes; the business definition is
// still pending.
type MachineStats struct {
	Total  int         `json:"total"`
	ByRisk RiskBuckets `json:"by_risk"`
}

// RiskBuckets splits machines by risk level.
type RiskBuckets struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// SafetyFunctionStats counts safety functions by compliance and by required
// performance level. A function is compliant when its achieved PL is set and
// meets the required PL.
type SafetyFunctionStats struct {
	Total    int               `json:"total"`
	ByStatus ComplianceBuckets `json:"by_status"`
	ByPL     PLBuckets         `json:"by_pl"`
}

// ComplianceBuckets splits safety functions into compliant and non-compliant.
type ComplianceBuckets struct {
	Compliant    int `json:"compliant"`
	NonCompliant int `json:"non_compliant"`
}

// PLBuckets counts safety functions by required performance level.
type PLBuckets struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
	D int `json:"d"`
	E int `json:"e"`
}
