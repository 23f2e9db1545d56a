package generator

import (
	"fmt"

	"github.com/BerylCAtieno/ad-copy-agent/internal/models"
)

// BuildPrompt composes the instruction sent to the assistant.
func BuildPrompt(userInput string, tone models.Tone, audience models.Audience) string {
	return fmt.Sprintf(`Create compelling ad copy for this product/service: "%s".

Target audience: %s
Tone should be: %s

Please provide four distinct parts:
1. A headline (5-7 words max)
2. A tagline (short phrase)
3. A concise product description (2-3 sentences max)
4. A call-to-action (1-3 words)

Format your response as a JSON object with these keys: headline, tagline, description, callToAction.
Do not include any explanation or additional text.`, userInput, audience.Descriptor(), tone.Descriptor())
}
