// ABOUTME: Name helpers shared by composed messages
// ABOUTME: Extracts a greeting-friendly first name

package models

import "strings"

// FirstName returns the first word of a display name, or "there" when the name is blank.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
