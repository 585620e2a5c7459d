package service

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report summarizes one export run
type Report struct {
	RunID     string
	Title     string
	OutputDir string
	// TreeFormat is the format of the per-network tree documents
	TreeFormat string

	TreeFiles  int
	JSONGraphs int
	JSONBytes  int

	TotalNetworks      int
	QualifyingNetworks int

	// Systems lists qualifying networks as "id(name)", sorted
	Systems []string
	// Skipped lists ids of qualifying networks that produced no output
	Skipped []string

	SummaryPath  string
	RegistryPath string
}

// Exported reports whether at least one network produced output
func (r *Report) Exported() bool {
	return r.JSONGraphs > 0
}

// String renders the count summary followed by the system list
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s files and %d JSON graphs (%d bytes, %s) generated in %s (%d total systems, %d desirable):",
		r.TreeFiles, strings.ToUpper(r.TreeFormat), r.JSONGraphs, r.JSONBytes,
		humanize.Bytes(uint64(r.JSONBytes)), r.OutputDir, r.TotalNetworks, r.QualifyingNetworks)
	if len(r.Systems) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(r.Systems, ", "))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&sb, "\nskipped: %s", strings.Join(r.Skipped, ", "))
	}
	return sb.String()
}
