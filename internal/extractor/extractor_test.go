package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCampaign = `Here is your campaign!

**Ad Copy:**
Headline: Sip Smarter, Live Better
Tagline: The bottle that remembers to drink for you.

**Email Marketing Copy:**
Subject: Your hydration just got an upgrade

**Social Media Posts:**
Meet EcoSip. #StayHydrated

**Radio Script:**
ANNOUNCER: Thirsty for change? EcoSip tracks every sip.

**Audio Brief:** EcoSip keeps busy professionals hydrated, one smart sip at a time.`

func TestExtractKnownExamples(t *testing.T) {
	tests := []struct {
		name     string
		document string
		label    string
		want     string
	}{
		{
			name:     "body on following line",
			document: "Ad Copy:\nBuy Now!\n\nEmail Marketing Copy:\nHello there",
			label:    "Ad Copy",
			want:     "Buy Now!",
		},
		{
			name:     "body on header line",
			document: "Audio Brief: Short punchy line about the product.\n\nAd Copy:\n...",
			label:    "Audio Brief",
			want:     "Short punchy line about the product.",
		},
		{
			name:     "missing label",
			document: "Ad Copy:\nBuy Now!\n\nEmail Marketing Copy:\nHello there",
			label:    "Radio Script",
			want:     "",
		},
	}

	for _, mode := range []Mode{ModeLines, ModePattern} {
		for _, tt := range tests {
			t.Run(string(mode)+"/"+tt.name, func(t *testing.T) {
				got := New(mode).Extract(tt.document, tt.label)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		document string
		label    string
		want     string
	}{
		{
			name:     "markdown bold headers",
			document: sampleCampaign,
			label:    "ad copy",
			want:     "Headline: Sip Smarter, Live Better\nTagline: The bottle that remembers to drink for you.",
		},
		{
			name:     "stops at colon terminated line",
			document: "Social Media Posts:\nPost one\nRadio Script:\nANNOUNCER: hi",
			label:    "Social Media Posts",
			want:     "Post one",
		},
		{
			name:     "numbered header",
			document: "1. Ad Copy: Buy it today\n\n2. Email Marketing Copy: Hello",
			label:    "Ad Copy",
			want:     "Buy it today",
		},
		{
			name:     "blank lines before body are skipped",
			document: "## Radio Script\n\nANNOUNCER: Thirsty?\nSFX: splash\n\nAudio Brief: x",
			label:    "Radio Script",
			want:     "ANNOUNCER: Thirsty?\nSFX: splash",
		},
		{
			name:     "stops at markdown heading",
			document: "## Ad Copy\nBuy now\n## Email Marketing Copy\nHi",
			label:    "Ad Copy",
			want:     "Buy now",
		},
		{
			name:     "hashtag lines are body text",
			document: "Social Media Posts:\nMeet EcoSip.\n#StayHydrated #EcoSip\n\nRadio Script:",
			label:    "Social Media Posts",
			want:     "Meet EcoSip.\n#StayHydrated #EcoSip",
		},
		{
			name:     "case insensitive label",
			document: sampleCampaign,
			label:    "AUDIO BRIEF",
			want:     "EcoSip keeps busy professionals hydrated, one smart sip at a time.",
		},
		{
			name:     "dash separator",
			document: "Ad Copy - Hydrate like you mean it\n\nnext",
			label:    "Ad Copy",
			want:     "Hydrate like you mean it",
		},
		{
			name:     "header without separator drops trailing text",
			document: "Ad Copy (headline + tagline)\nSip Smarter\n\n",
			label:    "Ad Copy",
			want:     "Sip Smarter",
		},
		{
			name:     "carriage returns",
			document: "Ad Copy:\r\nBuy Now!\r\n\r\nEmail Marketing Copy:\r\nHello",
			label:    "Ad Copy",
			want:     "Buy Now!",
		},
		{
			name:     "first match wins",
			document: "Ad Copy: first\n\nAd Copy: second",
			label:    "Ad Copy",
			want:     "first",
		},
		{
			name:     "empty label",
			document: sampleCampaign,
			label:    "   ",
			want:     "",
		},
		{
			name:     "empty document",
			document: "",
			label:    "Ad Copy",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lines(tt.document, tt.label))
		})
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		name     string
		document string
		label    string
		want     string
	}{
		{
			name:     "restated label is dropped after colon",
			document: "Ad Copy\nAd copy (headline + tagline): Sip smarter, live better.",
			label:    "Ad Copy",
			want:     "Sip smarter, live better.",
		},
		{
			name:     "truncates at numbered item",
			document: "Email Marketing Copy - Subject line ideas\nHello friend\n2. Social Media Posts\nPost",
			label:    "Email Marketing Copy",
			want:     "Subject line ideas\nHello friend",
		},
		{
			name:     "truncates at markdown heading",
			document: "### Radio Script\nANNOUNCER says hi\n### Audio Brief\nx",
			label:    "radio script",
			want:     "ANNOUNCER says hi",
		},
		{
			name:     "truncates at other label",
			document: sampleCampaign,
			label:    "Social Media Posts",
			want:     "Meet EcoSip. #StayHydrated",
		},
		{
			name:     "label must start a line",
			document: "We wrote the Ad Copy for you.",
			label:    "Ad Copy",
			want:     "",
		},
		{
			name:     "emphasis after a described header",
			document: "**Ad Copy (headline + tagline):**\nHeadline: Buy now\nTagline: Sip smart",
			label:    "Ad Copy",
			want:     "Headline: Buy now\nTagline: Sip smart",
		},
		{
			name:     "regex metacharacters in label",
			document: "Price (USD)?: 20\n",
			label:    "Price (USD)?",
			want:     "20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pattern(tt.document, tt.label))
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	for _, mode := range []Mode{ModeLines, ModePattern} {
		e := New(mode)
		for _, label := range Labels {
			first := e.Extract(sampleCampaign, label)
			second := e.Extract(sampleCampaign, label)
			assert.Equal(t, first, second, "mode %s label %s", mode, label)
		}
	}
}

func TestExtractAll(t *testing.T) {
	sections := Extractor{}.ExtractAll(sampleCampaign)

	assert.Equal(t, "Subject: Your hydration just got an upgrade", sections.Email)
	assert.Equal(t, "Meet EcoSip. #StayHydrated", sections.Social)
	assert.Equal(t, "ANNOUNCER: Thirsty for change? EcoSip tracks every sip.", sections.RadioScript)
	assert.Equal(t, "EcoSip keeps busy professionals hydrated, one smart sip at a time.", sections.AudioBrief)
	assert.NotEmpty(t, sections.AdCopy)
}

func TestExtractNeverPanics(t *testing.T) {
	inputs := []string{"", "\n\n\n", ":", "Ad Copy", "Ad Copy:", "#", "1.", "**", "Ad Copyé:é"}
	for _, mode := range []Mode{ModeLines, ModePattern} {
		for _, doc := range inputs {
			require.NotPanics(t, func() {
				New(mode).ExtractAll(doc)
			})
		}
	}
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeLines, mode)

	mode, err = ParseMode(" Pattern ")
	require.NoError(t, err)
	assert.Equal(t, ModePattern, mode)

	_, err = ParseMode("regex")
	assert.Error(t, err)
}
