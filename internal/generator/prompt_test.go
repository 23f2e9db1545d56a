package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BerylCAtieno/ad-copy-agent/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("a solar-powered phone charger", models.ToneHumorous, models.AudienceBoomers)

	assert.Contains(t, prompt, `"a solar-powered phone charger"`)
	assert.Contains(t, prompt, "Target audience: people born between 1946-1964")
	assert.Contains(t, prompt, "Tone should be: witty, playful, and entertaining")
	assert.Contains(t, prompt, "headline, tagline, description, callToAction")
	assert.Contains(t, prompt, "Do not include any explanation or additional text.")
}

func TestBuildPrompt_UnknownValuesUseDefaults(t *testing.T) {
	prompt := BuildPrompt("x", models.Tone("sarcastic"), models.Audience("toddlers"))

	assert.Contains(t, prompt, "Tone should be: "+models.DefaultTone.Descriptor())
	assert.Contains(t, prompt, "Target audience: "+models.DefaultAudience.Descriptor())
}
