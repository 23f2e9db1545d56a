package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTone(t *testing.T) {
	for _, opt := range Tones() {
		assert.Equal(t, Tone(opt.Value), ResolveTone(opt.Value))
	}
	assert.Equal(t, ToneProfessional, ResolveTone(""))
	assert.Equal(t, ToneProfessional, ResolveTone("Casual"))
	assert.Equal(t, ToneProfessional, ResolveTone("sarcastic"))
}

func TestResolveAudience(t *testing.T) {
	for _, opt := range Audiences() {
		assert.Equal(t, Audience(opt.Value), ResolveAudience(opt.Value))
	}
	assert.Equal(t, AudienceYoungProfessionals, ResolveAudience(""))
	assert.Equal(t, AudienceYoungProfessionals, ResolveAudience("gen z"))
}

func TestDescriptors(t *testing.T) {
	assert.Equal(t, "concise, direct, and simple", ToneMinimalist.Descriptor())
	assert.Equal(t, "formal, authoritative, and refined", Tone("unknown").Descriptor())
	assert.Contains(t, AudienceGenZ.Descriptor(), "1997-2012")
	assert.Contains(t, Audience("unknown").Descriptor(), "late 20s to early 40s")

	for _, opt := range Tones() {
		assert.NotEmpty(t, Tone(opt.Value).Descriptor())
	}
	for _, opt := range Audiences() {
		assert.NotEmpty(t, Audience(opt.Value).Descriptor())
	}
}

func TestOptionsAreCopies(t *testing.T) {
	tones := Tones()
	tones[0].Label = "changed"
	assert.Equal(t, "Professional", Tones()[0].Label)
}

func TestAdFeel(t *testing.T) {
	assert.Equal(t, "Meme-worthy and quirky", AdFeel("humorous", "gen-z"))
	assert.Equal(t, "Clear and dependable", AdFeel("minimalist", "boomers"))
	assert.Equal(t, "Tailored and effective", AdFeel("sarcastic", "gen-z"))
	assert.Equal(t, "Tailored and effective", AdFeel("", ""))

	feels := AdFeels()
	assert.Len(t, feels, len(Tones())*len(Audiences()))
	for _, tone := range Tones() {
		for _, audience := range Audiences() {
			assert.NotEqual(t, defaultAdFeel, AdFeel(tone.Value, audience.Value))
		}
	}
}
