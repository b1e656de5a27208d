package rostra

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal issue encountered while assembling a deck.
// The deck is still produced; the warning indicates the result may not be
// what the author intended.
type Warning struct {
	// Slide is the 1-indexed slide the warning refers to. Zero means the
	// warning applies to the deck as a whole.
	Slide int

	// Message describes the issue.
	Message string
}

// FormatWarnings renders warnings as a newline-separated string suitable
// for logging.
//
// Example:
//
//	warnings, err := rostra.FromManifest("deck.toml").Save("deck.pptx")
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rostra.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	lines := make([]string, len(warnings))
	for i, w := range warnings {
		if w.Slide > 0 {
			lines[i] = fmt.Sprintf("slide %d: %s", w.Slide, w.Message)
		} else {
			lines[i] = w.Message
		}
	}
	return strings.Join(lines, "\n")
}
