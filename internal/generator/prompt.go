package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("no content generated")

const systemPrompt = "You are an expert marketing copywriter who writes complete, ready-to-run campaigns."

// BuildPrompt asks for every known section under a plain "Label:" header so
// the extractor can find them again.
func BuildPrompt(brief models.Brief) string {
	return fmt.Sprintf(`Create a full marketing campaign for:
Product: %s
Target Audience: %s

Write each section under its own header line, exactly as shown below, and leave one blank line between sections:

%s:
A headline and a tagline.

%s:
An email subject line and a short body.

%s:
One social media post with hashtags.

%s:
A 30 second radio or podcast ad script.

%s:
One short, punchy sentence to be read aloud as an audio ad.

Do not use markdown, numbering or any other headers, and do not leave blank lines inside a section.`,
		brief.Product, brief.Audience,
		extractor.AdCopy, extractor.EmailCopy, extractor.SocialPosts, extractor.RadioScript, extractor.AudioBrief)
}

// cleanResponse trims whitespace and a surrounding code fence.
func cleanResponse(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```markdown")
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
