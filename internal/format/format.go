package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallback literals used when the server omits optional fields.
const (
	FallbackFilename = "download"
	FallbackError    = "Unknown error occurred"
)

var titleCaser = cases.Title(language.Und)

// Duration renders a duration badge from whole seconds: H:MM:SS at one hour
// or more, M:SS below. Zero or negative durations produce no badge.
func Duration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// StepType renders the download-step label for a server step_type value.
// Unknown values fall back to the generic label.
func StepType(stepType string) string {
	switch stepType {
	case "video":
		return "Downloading video"
	case "audio":
		return "Downloading audio"
	case "video+audio":
		return "Downloading"
	default:
		return "Downloading"
	}
}

// StepProgress renders the per-step label shown while a multi-step job is
// downloading: "Step X/Y" when more than one step exists, "Progress"
// otherwise.
func StepProgress(step, totalSteps int) string {
	if totalSteps > 1 {
		if step < 1 {
			step = 1
		}
		return fmt.Sprintf("Step %d/%d", step, totalSteps)
	}
	return "Progress"
}

// StatusLabel turns a server status string into a display label:
// underscores become spaces and words are title-cased.
func StatusLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(status, "_", " "))
}

// StatusBadge renders the prominent status value, uppercase.
func StatusBadge(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

// TitleFromURL derives a display title for a video URL: the trailing path
// segment after "videos/" when present, otherwise the URL itself.
func TitleFromURL(rawURL string) string {
	if idx := strings.LastIndex(rawURL, "videos/"); idx >= 0 {
		if segment := rawURL[idx+len("videos/"):]; segment != "" {
			return segment
		}
	}
	return rawURL
}

// DisplayTitle prefers a known title over the URL-derived fallback.
func DisplayTitle(title, rawURL string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return TitleFromURL(rawURL)
}

// Filename renders the saved-file summary line for a completed job.
func Filename(filename string) string {
	if strings.TrimSpace(filename) == "" {
		filename = FallbackFilename
	}
	return fmt.Sprintf("File saved: %s", filename)
}

// Error renders the failure summary for a failed job.
func Error(message string) string {
	if strings.TrimSpace(message) == "" {
		return FallbackError
	}
	return message
}
