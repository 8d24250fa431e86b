// Package deps reports the availability of the external binaries the
// pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"tubescribe/internal/config"
)

// Requirement defines an external dependency tubescribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements derives the external-binary requirements from config. whisper
// appears only when the transcription fallback is configured; ffmpeg is
// needed because yt-dlp delegates audio extraction to it.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YtDlp.Binary,
			Description: "Channel enumeration and audio download",
		},
		{
			Name:        "ffmpeg",
			Command:     "ffmpeg",
			Description: "Audio extraction (invoked by yt-dlp)",
			Optional:    true,
		},
	}
	if cfg.FallbackConfigured() {
		reqs = append(reqs, Requirement{
			Name:        "whisper",
			Command:     cfg.Whisper.Binary,
			Description: "Audio transcription fallback",
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of required dependencies that are not
// available.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
