// internal/result/resolve.go
//
// The resolver inspects a top-level webhook payload and pulls out the named
// sections the result view and the PDF export both consume. Two payload
// shapes exist in the wild: a strategy report wrapped in an "output" object,
// and a content-calendar object (usually the first element of a one-item
// array). Missing or mistyped fields degrade to empty sections, never
// errors.

package result

import (
	"encoding/json"
	"strings"

	"campaigndeck/internal/node"
)

// Field names as the automation webhooks emit them. Matched exactly.
const (
	fieldOutput                = "output"
	fieldClientName            = "clientName"
	fieldDeliverableType       = "deliverableType"
	fieldDeliverablesRequested = "deliverablesRequested"
	fieldFinalOutput           = "finalOutput"
	fieldReasoning             = "reasoning"
	fieldTaskBreakdown         = "task_breakdown"
	fieldTaskIndex             = "task"
	fieldTaskDetails           = "details"
	fieldProduct               = "Product"
	fieldBrandStrategy         = "brand_strategy"
	fieldStrategyWrapper       = "brand_strategy_brief"
	fieldCampaignWeek          = "campaign_week"
	fieldCampaignList          = "campaign"
	fieldDay                   = "day"
	fieldPlatform              = "platform"
	fieldTheme                 = "theme"
	fieldPostIdea              = "post_idea"
	fieldContentType           = "content_type"
	fieldCTA                   = "cta"
	rawStrategyKey             = "raw"
)

// Fallback literals substituted when client metadata is missing. Export is
// never blocked by absent optional fields.
const (
	DefaultClientName            = "Content Calendar Client"
	DefaultDeliverableType       = "Content Calendar"
	DefaultDeliverablesRequested = "Brand strategy and campaign calendar"
)

// Task is one entry of a strategy report's task breakdown.
type Task struct {
	Index  int
	Detail string
}

// CampaignDay is one unit of a campaign calendar.
type CampaignDay struct {
	Day         string
	Platform    string
	Theme       string
	PostIdea    string
	ContentType string
	CTA         string
}

// Sections is the set of named fields extracted from a webhook response.
type Sections struct {
	ClientName            string
	DeliverableType       string
	DeliverablesRequested string

	// Calendar shape
	Strategy     *node.Node
	CampaignDays []CampaignDay

	// Strategy-report shape
	Deliverables []*node.Node
	Reasoning    []string
	Tasks        []Task
}

// HasResult reports whether the payload carried anything displayable: a
// strategy brief, scheduled items, or free-form deliverables. Any one
// suffices.
func (s *Sections) HasResult() bool {
	if s == nil {
		return false
	}
	return s.Strategy != nil || len(s.CampaignDays) > 0 || len(s.Deliverables) > 0
}

// Resolve extracts sections from a decoded payload. The second return is
// false when the payload has no usable result; callers show an empty-state
// placeholder rather than an error.
func Resolve(payload any) (*Sections, bool) {
	obj := targetObject(payload)
	if obj == nil {
		return nil, false
	}
	if out, ok := obj.Get(fieldOutput); ok {
		if outObj, isObj := out.(*node.Object); isObj {
			s := resolveStrategyReport(outObj)
			return s, s.HasResult()
		}
	}
	s := resolveCalendar(obj)
	return s, s.HasResult()
}

// targetObject unwraps the payload to the object the sections live on: a
// one-element (or longer) array contributes its first element, and anything
// that is not an object resolves to none.
func targetObject(payload any) *node.Object {
	if list, ok := payload.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		payload = list[0]
	}
	obj, ok := payload.(*node.Object)
	if !ok {
		return nil
	}
	return obj
}

func resolveStrategyReport(out *node.Object) *Sections {
	s := &Sections{
		ClientName:            stringField(out, fieldClientName, DefaultClientName),
		DeliverableType:       stringField(out, fieldDeliverableType, DefaultDeliverableType),
		DeliverablesRequested: stringField(out, fieldDeliverablesRequested, DefaultDeliverablesRequested),
	}
	if items, ok := out.Get(fieldFinalOutput); ok {
		if list, isList := items.([]any); isList {
			for _, item := range list {
				if n := node.Normalize(item); n != nil {
					s.Deliverables = append(s.Deliverables, n)
				}
			}
		}
	}
	if reasons, ok := out.Get(fieldReasoning); ok {
		if list, isList := reasons.([]any); isList {
			for _, reason := range list {
				if text := stringValue(reason); strings.TrimSpace(text) != "" {
					s.Reasoning = append(s.Reasoning, text)
				}
			}
		}
	}
	if tasks, ok := out.Get(fieldTaskBreakdown); ok {
		if list, isList := tasks.([]any); isList {
			for _, entry := range list {
				taskObj, isObj := entry.(*node.Object)
				if !isObj {
					continue
				}
				idx, _ := taskObj.Get(fieldTaskIndex)
				detail, _ := taskObj.Get(fieldTaskDetails)
				s.Tasks = append(s.Tasks, Task{
					Index:  intValue(idx),
					Detail: stringValue(detail),
				})
			}
		}
	}
	return s
}

func resolveCalendar(obj *node.Object) *Sections {
	s := &Sections{
		ClientName:            stringField(obj, fieldClientName, ""),
		DeliverableType:       stringField(obj, fieldDeliverableType, DefaultDeliverableType),
		DeliverablesRequested: stringField(obj, fieldDeliverablesRequested, DefaultDeliverablesRequested),
	}
	if s.ClientName == "" {
		s.ClientName = stringField(obj, fieldProduct, DefaultClientName)
	}
	if raw, ok := obj.Get(fieldBrandStrategy); ok {
		s.Strategy = resolveStrategyBrief(raw)
	}
	if week, ok := obj.Get(fieldCampaignWeek); ok {
		s.CampaignDays = resolveCampaignDays(week)
	}
	return s
}

// resolveStrategyBrief accepts the brand strategy as a JSON-encoded string,
// a direct object, or an object nested one level under the known wrapper
// key. A string that fails to decode is wrapped as a single-field object so
// it still displays instead of vanishing.
func resolveStrategyBrief(raw any) *node.Node {
	switch value := raw.(type) {
	case string:
		decoded, err := node.Decode([]byte(value))
		if err != nil {
			return &node.Node{
				Kind:    node.KindMap,
				Entries: []node.Entry{{Key: rawStrategyKey, Value: &node.Node{Kind: node.KindPrimitive, Text: value}}},
			}
		}
		return node.Normalize(unwrapStrategy(decoded))
	case *node.Object:
		return node.Normalize(unwrapStrategy(value))
	default:
		return nil
	}
}

func unwrapStrategy(v any) any {
	if obj, ok := v.(*node.Object); ok {
		if inner, found := obj.Get(fieldStrategyWrapper); found {
			return inner
		}
	}
	return v
}

// resolveCampaignDays accepts either a direct list of day entries or a
// `{campaign: [...]}` wrapper. Anything else resolves to an empty list.
func resolveCampaignDays(week any) []CampaignDay {
	var list []any
	switch value := week.(type) {
	case []any:
		list = value
	case *node.Object:
		if inner, ok := value.Get(fieldCampaignList); ok {
			list, _ = inner.([]any)
		}
	}
	days := make([]CampaignDay, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(*node.Object)
		if !ok {
			continue
		}
		days = append(days, CampaignDay{
			Day:         stringField(obj, fieldDay, ""),
			Platform:    stringField(obj, fieldPlatform, ""),
			Theme:       stringField(obj, fieldTheme, ""),
			PostIdea:    stringField(obj, fieldPostIdea, ""),
			ContentType: stringField(obj, fieldContentType, ""),
			CTA:         stringField(obj, fieldCTA, ""),
		})
	}
	return days
}

func stringField(obj *node.Object, key, fallback string) string {
	v, ok := obj.Get(key)
	if !ok {
		return fallback
	}
	text := stringValue(v)
	if strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

func stringValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	default:
		return ""
	}
}

func intValue(v any) int {
	switch value := v.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return int(i)
		}
	case float64:
		return int(value)
	case int:
		return value
	}
	return 0
}
