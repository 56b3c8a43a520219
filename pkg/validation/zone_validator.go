package validation

import (
	"fmt"
	"image"

	"go-zone-diff/pkg/models"
)

// ZoneIssue represents a problem found in a zone configuration
type ZoneIssue struct {
	Type     string `json:"type"`
	Zone     string `json:"zone,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning"
}

// ZoneValidator checks zone sets against their canonical resolution and against real images
type ZoneValidator struct {
	// MinArea below which a zone is reported as suspiciously small
	MinArea int
}

// NewZoneValidator creates a zone validator with default thresholds
func NewZoneValidator() *ZoneValidator {
	return &ZoneValidator{MinArea: 16}
}

// ValidateZoneSet reports structural problems in the zone set
func (zv *ZoneValidator) ValidateZoneSet(set models.ZoneSet) []ZoneIssue {
	var issues []ZoneIssue

	if set.Width <= 0 || set.Height <= 0 {
		issues = append(issues, ZoneIssue{
			Type:     "canonical_resolution",
			Message:  fmt.Sprintf("canonical resolution %dx%d is not positive", set.Width, set.Height),
			Severity: "error",
		})
	}
	if len(set.Zones) == 0 {
		issues = append(issues, ZoneIssue{Type: "empty", Message: "no zones configured", Severity: "error"})
	}

	seen := make(map[string]bool)
	for _, z := range set.Zones {
		if err := z.Validate(); err != nil {
			issues = append(issues, ZoneIssue{Type: "bounds", Zone: z.Name, Message: err.Error(), Severity: "error"})
			continue
		}
		if seen[z.Name] {
			issues = append(issues, ZoneIssue{Type: "duplicate", Zone: z.Name, Message: "zone name used more than once", Severity: "error"})
		}
		seen[z.Name] = true

		if set.Width > 0 && set.Height > 0 && !z.Rect().In(set.Bounds()) {
			issues = append(issues, ZoneIssue{
				Type:     "out_of_bounds",
				Zone:     z.Name,
				Message:  fmt.Sprintf("rectangle %v exceeds canonical resolution %dx%d", z.Rect(), set.Width, set.Height),
				Severity: "error",
			})
		}
		if z.Area() < zv.MinArea {
			issues = append(issues, ZoneIssue{
				Type:     "small_area",
				Zone:     z.Name,
				Message:  fmt.Sprintf("area %d px is below %d px; percentages will be coarse", z.Area(), zv.MinArea),
				Severity: "warning",
			})
		}
	}
	return issues
}

// ValidateAgainstImage reports zones that do not fit an image of the given bounds
func (zv *ZoneValidator) ValidateAgainstImage(set models.ZoneSet, bounds image.Rectangle) []ZoneIssue {
	var issues []ZoneIssue
	if bounds.Dx() != set.Width || bounds.Dy() != set.Height {
		issues = append(issues, ZoneIssue{
			Type:     "resolution",
			Message:  fmt.Sprintf("image is %dx%d but zones were defined for %dx%d", bounds.Dx(), bounds.Dy(), set.Width, set.Height),
			Severity: "warning",
		})
	}
	local := image.Rect(0, 0, bounds.Dx(), bounds.Dy())
	for _, z := range set.Zones {
		if !z.Rect().In(local) {
			issues = append(issues, ZoneIssue{
				Type:     "out_of_bounds",
				Zone:     z.Name,
				Message:  fmt.Sprintf("rectangle %v does not fit image %dx%d", z.Rect(), bounds.Dx(), bounds.Dy()),
				Severity: "error",
			})
		}
	}
	return issues
}

// HasErrors reports whether any issue has error severity
func HasErrors(issues []ZoneIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}

// ConvertIssuesToMessages converts zone issues to string messages
func ConvertIssuesToMessages(issues []ZoneIssue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Zone != "" {
			messages = append(messages, fmt.Sprintf("%s: zone %q: %s", issue.Severity, issue.Zone, issue.Message))
		} else {
			messages = append(messages, fmt.Sprintf("%s: %s", issue.Severity, issue.Message))
		}
	}
	return messages
}
