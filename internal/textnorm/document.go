package textnorm

import "strings"

// DefaultMaxDescriptionChars bounds BuildJobDocument's description field
// when the caller doesn't specify one.
const DefaultMaxDescriptionChars = 6000

// BuildJobDocument assembles a job posting's fields into the structured
// text block fed to the embedding service. The fixed "Title:/Company:
// /Location:/Description:" layout gives the embedding model consistent
// structure to key off, rather than a free-form blob.
func BuildJobDocument(title, company, location, description string, maxDescriptionChars int) string {
	if maxDescriptionChars <= 0 {
		maxDescriptionChars = DefaultMaxDescriptionChars
	}

	if strings.Contains(description, "<") && strings.Contains(description, ">") {
		description = CleanJobText(description).Text
	}

	if len(description) > maxDescriptionChars {
		truncated := description[:maxDescriptionChars]
		if idx := strings.LastIndex(truncated, " "); idx >= 0 {
			truncated = truncated[:idx]
		}
		description = truncated + "..."
	}

	parts := []string{
		"Title: " + strings.TrimSpace(title),
		"Company: " + strings.TrimSpace(company),
		"Location: " + strings.TrimSpace(location),
		"",
		"Description:",
		strings.TrimSpace(description),
	}
	return strings.Join(parts, "\n")
}
