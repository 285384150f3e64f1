package transcript

import (
	"regexp"
	"strings"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// defaultSpeaker is used for cue text that carries no speaker label
const defaultSpeaker = "Speaker"

var (
	vttCueRe  = regexp.MustCompile(`^(\d{1,2}:\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{1,2}:\d{2}:\d{2}\.\d{3})`)
	srtCueRe  = regexp.MustCompile(`^(\d{1,2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{1,2}:\d{2}:\d{2},\d{3})`)
	numericRe = regexp.MustCompile(`^\d+$`)
)

// Normalize parses raw transcript text into an ordered utterance sequence.
// It is a pure function: identical input always yields identical output.
// Malformed lines are absorbed as continuation text or dropped; a zero-length
// result is a valid outcome for input with no parseable dialogue.
func Normalize(raw string, format entities.TranscriptFormat) []entities.Utterance {
	switch format {
	case entities.FormatWebVTT:
		return parseCued(raw, vttCueRe)
	case entities.FormatSRT:
		return parseCued(raw, srtCueRe)
	default:
		return parsePlain(raw)
	}
}

// parsePlain handles "Speaker: text" dialogue. Lines without a colon continue
// the previous utterance; multi-line dialogue is space-joined.
func parsePlain(raw string) []entities.Utterance {
	var out []entities.Utterance

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 {
			out = append(out, entities.Utterance{
				Speaker: strings.TrimSpace(line[:idx]),
				Text:    strings.TrimSpace(line[idx+1:]),
			})
			continue
		}

		// Continuation line; dropped when there is nothing to continue.
		if len(out) > 0 {
			appendText(&out[len(out)-1], line)
		}
	}

	return out
}

// parseCued handles WebVTT and SRT caption tracks. The two formats differ
// only in the millisecond separator of the cue timing line.
func parseCued(raw string, cueRe *regexp.Regexp) []entities.Utterance {
	var (
		out             []entities.Utterance
		cur             *entities.Utterance
		awaitingSpeaker bool
	)

	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if line == "" ||
			strings.HasPrefix(line, "WEBVTT") ||
			strings.HasPrefix(line, "NOTE") ||
			strings.HasPrefix(line, "STYLE") ||
			numericRe.MatchString(line) {
			continue
		}

		if m := cueRe.FindStringSubmatch(line); m != nil {
			flush()
			cur = &entities.Utterance{StartTime: m[1], EndTime: m[2]}
			awaitingSpeaker = true
			continue
		}

		// Text before the first cue has no timing context; drop it.
		if cur == nil {
			continue
		}

		if awaitingSpeaker {
			awaitingSpeaker = false
			if idx := strings.Index(line, ":"); idx >= 0 {
				cur.Speaker = strings.TrimSpace(line[:idx])
				cur.Text = strings.TrimSpace(line[idx+1:])
			} else {
				cur.Speaker = defaultSpeaker
				cur.Text = line
			}
			continue
		}

		appendText(cur, line)
	}

	flush()
	return out
}

func appendText(u *entities.Utterance, line string) {
	if u.Text == "" {
		u.Text = line
	} else {
		u.Text += " " + line
	}
}

// Flatten renders utterances back into "speaker: text" lines, the form the
// AI service consumes.
func Flatten(utterances []entities.Utterance) string {
	var b strings.Builder
	for i, u := range utterances {
		if i > 0 {
			b.WriteByte('\n')
		}
		if u.Speaker != "" {
			b.WriteString(u.Speaker)
			b.WriteString(": ")
		}
		b.WriteString(u.Text)
	}
	return b.String()
}
