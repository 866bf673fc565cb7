package tui

import "campaigndeck/internal/node"

// sampleCalendarJSON mirrors a typical content-calendar webhook reply. It
// backs the -mock flag and the app tests, so the full result view can be
// exercised without a live automation.
const sampleCalendarJSON = `[{
  "clientName": "Sample Roasters",
  "deliverableType": "Content Calendar",
  "deliverablesRequested": "Brand strategy and campaign calendar",
  "brand_strategy": "{\"positioning_en\":\"The neighborhood roaster with specialty-grade beans\",\"tone_of_voice_en\":\"Warm, knowledgeable, unpretentious\",\"content_pillars\":[\"Origin stories\",\"Brewing guides\",\"Community\"]}",
  "campaign_week": {
    "campaign": [
      {"day": "Monday", "platform": "Instagram", "theme": "Origin story", "post_idea": "Carousel on the Huila farm visit", "content_type": "Carousel", "cta": "Read the full story"},
      {"day": "Wednesday", "platform": "YouTube", "theme": "Brewing guides", "post_idea": "60-second V60 tutorial", "content_type": "Short", "cta": "Try it at home"},
      {"day": "Friday", "platform": "Email", "theme": "Community", "post_idea": "Customer spotlight newsletter", "content_type": "Newsletter", "cta": "Share your setup"}
    ]
  }
}]`

// SamplePayload decodes the bundled sample reply. The literal is known-good,
// so a decode failure is a programming error.
func SamplePayload() any {
	payload, err := node.Decode([]byte(sampleCalendarJSON))
	if err != nil {
		panic("tui: sample payload is invalid: " + err.Error())
	}
	return payload
}
