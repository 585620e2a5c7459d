package domain

import "strings"

// Discipline classifies a network by engineering domain
type Discipline int

const (
	DisciplineInvalid    Discipline = -1
	DisciplineMechanical Discipline = 0
	DisciplineElectrical Discipline = 1
	DisciplinePiping     Discipline = 2

	// DisciplineCount is the number of valid disciplines
	DisciplineCount = 3
)

// Disciplines lists the valid disciplines in bucket order
var Disciplines = [DisciplineCount]Discipline{
	DisciplineMechanical,
	DisciplineElectrical,
	DisciplinePiping,
}

// String returns the discipline name
func (d Discipline) String() string {
	switch d {
	case DisciplineMechanical:
		return "Mechanical"
	case DisciplineElectrical:
		return "Electrical"
	case DisciplinePiping:
		return "Piping"
	default:
		return "Invalid"
	}
}

// Valid reports whether d indexes a discipline bucket
func (d Discipline) Valid() bool {
	return d >= DisciplineMechanical && d < DisciplineCount
}

// ParseDiscipline parses a discipline name, returning DisciplineInvalid for unknown input
func ParseDiscipline(s string) Discipline {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mechanical", "hvac", "duct":
		return DisciplineMechanical
	case "electrical", "power":
		return DisciplineElectrical
	case "piping", "plumbing":
		return DisciplinePiping
	default:
		return DisciplineInvalid
	}
}
