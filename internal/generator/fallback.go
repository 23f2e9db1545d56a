package generator

import "github.com/BerylCAtieno/ad-copy-agent/internal/models"

var audienceFallbacks = map[models.Audience]models.AdContent{
	models.AudienceGenZ: {
		Headline:     "Vibe Check: Approved",
		Tagline:      "No cap, just facts",
		Description:  "This is the moment you've been waiting for. A game-changer that hits different and lives rent-free in your mind.",
		CallToAction: "Get It",
	},
	models.AudienceMillennials: {
		Headline:     "Life Hack You Deserve",
		Tagline:      "Adulting just got easier",
		Description:  "Remember when things were complicated? Not anymore. This solution works as hard as you do, but without the burnout.",
		CallToAction: "Try Now",
	},
	models.AudienceYoungProfessionals: {
		Headline:     "Elevate Your Standards",
		Tagline:      "Efficiency meets excellence",
		Description:  "Designed for those who understand that time is valuable. Our solution delivers results that speak for themselves.",
		CallToAction: "Discover More",
	},
	models.AudienceBoomers: {
		Headline:     "Quality You Can Trust",
		Tagline:      "Reliable, tested, proven",
		Description:  "Crafted with the attention to detail you appreciate. A dependable solution that delivers value without the complexity.",
		CallToAction: "Learn More",
	},
}

var genericFallback = models.AdContent{
	Headline:     "The Solution You Need",
	Tagline:      "Simple. Effective. Essential.",
	Description:  "We've created something that solves real problems with thoughtful design. Experience the difference today.",
	CallToAction: "Start Now",
}

var tryAgain = models.AdContent{
	Headline:     "We'll Try Again",
	Tagline:      "Temporary pause",
	Description:  "We're having trouble generating your ad content right now. Please try again in a moment.",
	CallToAction: "Retry",
}

// Fallback returns the canned ad for the raw audience value. It matches the
// value exactly, so unrecognised audiences get the generic ad instead of the
// default audience's one.
func Fallback(audience string) models.AdContent {
	if ad, ok := audienceFallbacks[models.Audience(audience)]; ok {
		return ad
	}
	return genericFallback
}

// TryAgain is the ad shown when generation failed upstream.
func TryAgain() models.AdContent {
	return tryAgain
}
