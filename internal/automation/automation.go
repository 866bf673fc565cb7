// Package automation is the registry of marketing automations the deck can
// drive. Each automation maps to one external webhook; the slug doubles as
// the event-type prefix on the wire and the key webhook overrides are stored
// under.
package automation

// Automation describes one externally hosted workflow.
type Automation struct {
	Slug              string
	Name              string
	Description       string
	DefaultWebhookURL string
}

// Registry slugs.
const (
	SlugStrategyGenerator = "strategy-generator"
	SlugContentCalendar   = "content-calendar"
)

var registry = []Automation{
	{
		Slug:              SlugStrategyGenerator,
		Name:              "Strategy Generator",
		Description:       "Generate REP strategies based on market conditions.",
		DefaultWebhookURL: "https://automations.internal.example/webhook/strategy-generator",
	},
	{
		Slug:              SlugContentCalendar,
		Name:              "Content Calendar",
		Description:       "Generate content calendar based on market conditions.",
		DefaultWebhookURL: "https://automations.internal.example/webhook/content-calendar",
	},
}

// All returns the registered automations in display order.
func All() []Automation {
	out := make([]Automation, len(registry))
	copy(out, registry)
	return out
}

// BySlug looks up an automation.
func BySlug(slug string) (Automation, bool) {
	for _, a := range registry {
		if a.Slug == slug {
			return a, true
		}
	}
	return Automation{}, false
}
