package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveStudentID resolves user input to a stored student ID. Accepts
// an exact ID, a case-insensitive name, or a unique ID prefix.
func resolveStudentID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("student ID is required")
	}

	students, err := app.Roster.ListStudents(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range students {
		if s.ID == input {
			return s.ID, nil
		}
	}

	for _, s := range students {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range students {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("student not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("student ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
