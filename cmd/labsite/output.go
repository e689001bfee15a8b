package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/matsen/labsite/internal/chain"
	"github.com/matsen/labsite/internal/render"
)

// TextWrapWidth is the column limit for human output.
const TextWrapWidth = 72

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	ID     string `json:"id,omitempty"`
}

// ValidateResponse is the response for the validate command.
type ValidateResponse struct {
	Input      string `json:"input"`
	Valid      bool   `json:"valid"`
	ORCID      string `json:"orcid,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

// writePublicationsHuman prints year groups the way the site lays them out.
func writePublicationsHuman(w io.Writer, groups []render.YearGroup) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", g.Label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(g.Label)))
		for _, p := range g.Publications {
			fmt.Fprintf(w, "  %s\n", wrapText(p.Title, TextWrapWidth, "  "))
			fmt.Fprintf(w, "    %s\n", wrapText(p.Authors, TextWrapWidth-2, "    "))
			fmt.Fprintf(w, "    %s\n", p.Venue)
			fmt.Fprintf(w, "    %s\n", p.URL)
		}
	}
}

// writeStagesHuman prints which providers were tried and how each fared.
func writeStagesHuman(w io.Writer, res chain.Result) {
	for _, st := range res.Stages {
		line := fmt.Sprintf("  %-9s %-8s %s", st.Provider, st.Kind, formatDuration(st.Duration))
		if st.Kind == chain.Success {
			line += fmt.Sprintf("  (%d works)", st.Count)
		}
		if st.Error != "" {
			line += "  " + st.Error
		}
		fmt.Fprintln(w, line)
	}
}

// wrapText breaks text into lines of at most width bytes where word
// boundaries allow; continuation lines start with indent.
func wrapText(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	lines := []string{words[0]}
	for _, w := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(w) > width {
			lines = append(lines, w)
			continue
		}
		*last += " " + w
	}
	return strings.Join(lines, "\n"+indent)
}

// formatDuration prints sub-second durations in ms, longer ones in seconds.
func formatDuration(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
