// internal/domain/models/positions.go
package models

// Positions is the fixed catalog of job positions a user can hold.
var Positions = []string{
	"Backend Dev",
	"Frontend Dev",
	"Full Stack Dev",
	"IT Admin",
	"UI/UX",
	"Team Lead",
	"QA",
}

// legacyPositions maps position spellings from earlier persisted data to
// their canonical catalog entries.
var legacyPositions = map[string]string{
	"Tean Lead": "Team Lead",
}

// IsValidPosition checks whether value is in the position catalog.
func IsValidPosition(value string) bool {
	for _, p := range Positions {
		if p == value {
			return true
		}
	}
	return false
}

// NormalizePosition maps legacy spellings to the canonical entry and falls
// back to the first catalog position for anything unrecognized.
func NormalizePosition(value string) string {
	if canonical, ok := legacyPositions[value]; ok {
		return canonical
	}
	if IsValidPosition(value) {
		return value
	}
	return Positions[0]
}
