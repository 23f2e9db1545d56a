package models

import "strings"

// GenerationRequest is the body accepted by the generation endpoint.
type GenerationRequest struct {
	UserInput string `json:"userInput" binding:"required"`
	Tone      string `json:"tone"`
	Audience  string `json:"audience"`
}

// AdContent is the four-part ad copy returned to callers.
type AdContent struct {
	Headline     string `json:"headline" validate:"required"`
	Tagline      string `json:"tagline" validate:"required"`
	Description  string `json:"description" validate:"required"`
	CallToAction string `json:"callToAction" validate:"required"`
}

// Tone steers the writing style of the generated copy.
type Tone string

const (
	ToneProfessional  Tone = "professional"
	ToneCasual        Tone = "casual"
	ToneHumorous      Tone = "humorous"
	ToneInspirational Tone = "inspirational"
	ToneMinimalist    Tone = "minimalist"

	DefaultTone = ToneProfessional
)

// Audience is the target demographic of the generated copy.
type Audience string

const (
	AudienceGenZ               Audience = "gen-z"
	AudienceMillennials        Audience = "millennials"
	AudienceYoungProfessionals Audience = "young-professionals"
	AudienceBoomers            Audience = "boomers"

	DefaultAudience = AudienceYoungProfessionals
)

// Option is a selectable value with a human readable label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var toneDescriptors = map[Tone]string{
	ToneProfessional:  "formal, authoritative, and refined",
	ToneCasual:        "relaxed, conversational, and approachable",
	ToneHumorous:      "witty, playful, and entertaining",
	ToneInspirational: "uplifting, motivational, and emotional",
	ToneMinimalist:    "concise, direct, and simple",
}

var audienceDescriptors = map[Audience]string{
	AudienceGenZ:               "people born between 1997-2012, who value authenticity, digital experiences, and social consciousness",
	AudienceMillennials:        "people born between 1981-1996, who value experiences, work-life balance, and technological integration",
	AudienceYoungProfessionals: "career-focused individuals in their late 20s to early 40s, who value efficiency, quality, and professional growth",
	AudienceBoomers:            "people born between 1946-1964, who value reliability, tradition, and quality craftsmanship",
}

var toneOptions = []Option{
	{Value: string(ToneProfessional), Label: "Professional"},
	{Value: string(ToneCasual), Label: "Casual"},
	{Value: string(ToneHumorous), Label: "Humorous"},
	{Value: string(ToneInspirational), Label: "Inspirational"},
	{Value: string(ToneMinimalist), Label: "Minimalist"},
}

var audienceOptions = []Option{
	{Value: string(AudienceGenZ), Label: "Gen Z"},
	{Value: string(AudienceMillennials), Label: "Millennials"},
	{Value: string(AudienceYoungProfessionals), Label: "Young Professionals"},
	{Value: string(AudienceBoomers), Label: "Boomers"},
}

// ResolveTone maps a raw value to a known tone, defaulting to professional.
func ResolveTone(raw string) Tone {
	t := Tone(raw)
	if _, ok := toneDescriptors[t]; ok {
		return t
	}
	return DefaultTone
}

// ResolveAudience maps a raw value to a known audience, defaulting to young professionals.
func ResolveAudience(raw string) Audience {
	a := Audience(raw)
	if _, ok := audienceDescriptors[a]; ok {
		return a
	}
	return DefaultAudience
}

// Descriptor returns the prompt phrase for the tone.
func (t Tone) Descriptor() string {
	return toneDescriptors[ResolveTone(string(t))]
}

// Descriptor returns the prompt phrase for the audience.
func (a Audience) Descriptor() string {
	return audienceDescriptors[ResolveAudience(string(a))]
}

// Tones lists the tone options in display order.
func Tones() []Option {
	out := make([]Option, len(toneOptions))
	copy(out, toneOptions)
	return out
}

// Audiences lists the audience options in display order.
func Audiences() []Option {
	out := make([]Option, len(audienceOptions))
	copy(out, audienceOptions)
	return out
}

const defaultAdFeel = "Tailored and effective"

var adFeels = map[string]string{
	"professional_gen-z":               "Authoritative but authentic",
	"professional_millennials":         "Polished and established",
	"professional_young-professionals": "Premium and solution-focused",
	"professional_boomers":             "Trusted and time-tested",

	"casual_gen-z":               "Chill and relatable",
	"casual_millennials":         "Friendly and accessible",
	"casual_young-professionals": "Approachable but competent",
	"casual_boomers":             "Straightforward and honest",

	"humorous_gen-z":               "Meme-worthy and quirky",
	"humorous_millennials":         "Witty and nostalgic",
	"humorous_young-professionals": "Cleverly entertaining",
	"humorous_boomers":             "Lighthearted and warm",

	"inspirational_gen-z":               "Empowering and impactful",
	"inspirational_millennials":         "Meaningful and purposeful",
	"inspirational_young-professionals": "Ambitious and motivating",
	"inspirational_boomers":             "Uplifting and valuable",

	"minimalist_gen-z":               "Clean and essential",
	"minimalist_millennials":         "Simple but significant",
	"minimalist_young-professionals": "Efficient and effective",
	"minimalist_boomers":             "Clear and dependable",
}

// AdFeel describes the overall feel of a tone and audience pairing.
// Unknown pairings get a generic description rather than being resolved to defaults.
func AdFeel(tone, audience string) string {
	if feel, ok := adFeels[strings.Join([]string{tone, audience}, "_")]; ok {
		return feel
	}
	return defaultAdFeel
}

// AdFeels returns a copy of the full tone_audience feel table.
func AdFeels() map[string]string {
	out := make(map[string]string, len(adFeels))
	for k, v := range adFeels {
		out[k] = v
	}
	return out
}
