package domain

import "time"

// GraphParameterName is the name of the parameter holding exported JSON graphs
const GraphParameterName = "MepSystemGraphJson"

// ProjectInfoElementID is the element that holds the project-wide summary document
const ProjectInfoElementID = "project-info"

// StorageScope is the element category a parameter definition is bound to
type StorageScope string

const (
	ScopeProject StorageScope = "project"
	ScopeNetwork StorageScope = "network"
)

// ScopeFor returns the storage scope implied by the export options
func ScopeFor(opts ExportOptions) StorageScope {
	if opts.ProjectWide {
		return ScopeProject
	}
	return ScopeNetwork
}

// ParameterDefinition describes a storage parameter bound to a scope
type ParameterDefinition struct {
	Name      string       `json:"name"`
	Scope     StorageScope `json:"scope"`
	CreatedAt time.Time    `json:"created_at"`
}

// ParameterValue is one stored parameter value
type ParameterValue struct {
	ElementID string    `json:"element_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	RunID     string    `json:"run_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportRun records one export run
type ExportRun struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Networks   int        `json:"networks"`
	JSONGraphs int        `json:"json_graphs"`
	Succeeded  bool       `json:"succeeded"`
}
