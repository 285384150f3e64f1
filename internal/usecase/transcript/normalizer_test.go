package transcript

import (
	"reflect"
	"testing"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

func TestNormalizePlain(t *testing.T) {
	raw := "Sarah: Let's get started.\nMike: Sounds good.\nI had one more thought.\n\nSarah: Great."

	got := Normalize(raw, entities.FormatPlain)
	want := []entities.Utterance{
		{Speaker: "Sarah", Text: "Let's get started."},
		{Speaker: "Mike", Text: "Sounds good. I had one more thought."},
		{Speaker: "Sarah", Text: "Great."},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected utterances:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestNormalizePlainLeadingContinuationDropped(t *testing.T) {
	got := Normalize("no colon here\nSarah: hello", entities.FormatPlain)
	want := []entities.Utterance{{Speaker: "Sarah", Text: "hello"}}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeWebVTT(t *testing.T) {
	raw := "WEBVTT\n\n1\n00:00:01.000 --> 00:00:03.500\nSarah: Let's get started.\n"

	got := Normalize(raw, entities.FormatWebVTT)
	want := []entities.Utterance{
		{
			Speaker:   "Sarah",
			Text:      "Let's get started.",
			StartTime: "00:00:01.000",
			EndTime:   "00:00:03.500",
		},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected utterances:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestNormalizeWebVTTMultiLineAndDefaults(t *testing.T) {
	raw := `WEBVTT

NOTE generated by recorder

1
00:00:01.000 --> 00:00:03.500
Sarah: Let's get started
with the agenda.

2
00:00:04.000 --> 00:00:06.000
no speaker label on this cue
`

	got := Normalize(raw, entities.FormatWebVTT)
	if len(got) != 2 {
		t.Fatalf("expected 2 utterances, got %d: %+v", len(got), got)
	}
	if got[0].Text != "Let's get started with the agenda." {
		t.Errorf("continuation not joined: %q", got[0].Text)
	}
	if got[1].Speaker != "Speaker" {
		t.Errorf("expected default speaker, got %q", got[1].Speaker)
	}
	if got[1].Text != "no speaker label on this cue" {
		t.Errorf("unexpected text %q", got[1].Text)
	}
}

func TestNormalizeSRT(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:03,500\nMike: Hello everyone.\n\n2\n00:00:04,000 --> 00:00:05,000\nMike: Welcome back.\n"

	got := Normalize(raw, entities.FormatSRT)
	want := []entities.Utterance{
		{Speaker: "Mike", Text: "Hello everyone.", StartTime: "00:00:01,000", EndTime: "00:00:03,500"},
		{Speaker: "Mike", Text: "Welcome back.", StartTime: "00:00:04,000", EndTime: "00:00:05,000"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected utterances:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestNormalizeEmptyAndGarbage(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		format entities.TranscriptFormat
	}{
		{"empty plain", "", entities.FormatPlain},
		{"blank lines", "\n\n\n", entities.FormatPlain},
		{"vtt header only", "WEBVTT\n\n", entities.FormatWebVTT},
		{"srt index only", "1\n2\n3\n", entities.FormatSRT},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw, tc.format); len(got) != 0 {
				t.Fatalf("expected empty result, got %+v", got)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := "WEBVTT\n\n1\n00:00:01.000 --> 00:00:03.500\nSarah: First.\n\n2\n00:00:04.000 --> 00:00:05.000\nSecond thought here.\n"

	first := Normalize(raw, entities.FormatWebVTT)
	second := Normalize(raw, entities.FormatWebVTT)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalize is not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestNormalizePlainOrderPreserved(t *testing.T) {
	raw := "A: one\nB: two\nC: three\nD: four"

	got := Normalize(raw, entities.FormatPlain)
	speakers := make([]string, len(got))
	for i, u := range got {
		speakers[i] = u.Speaker
	}

	want := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(speakers, want) {
		t.Fatalf("order not preserved: got %v want %v", speakers, want)
	}
}

func TestFlatten(t *testing.T) {
	utterances := []entities.Utterance{
		{Speaker: "Sarah", Text: "Hello."},
		{Speaker: "", Text: "stray text"},
		{Speaker: "Mike", Text: "Hi."},
	}

	got := Flatten(utterances)
	want := "Sarah: Hello.\nstray text\nMike: Hi."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
