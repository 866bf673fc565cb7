package tui

import (
	"strings"
	"testing"
)

func TestBriefFormValidateRequiredFields(t *testing.T) {
	f := newBriefForm()
	if f.validate() {
		t.Fatalf("empty form must not validate")
	}
	for _, id := range []int{fieldProduct, fieldAudience, fieldGoal, fieldChannels, fieldBrandLink} {
		if _, ok := f.errors[id]; !ok {
			t.Fatalf("expected error for field %d", id)
		}
	}
	if _, ok := f.errors[fieldTimeline]; ok {
		t.Fatalf("default timeline value should be valid")
	}
}

func TestBriefFormValidateTimeline(t *testing.T) {
	f := newBriefForm()
	fillValidBrief(f)
	for _, bad := range []string{"", "0", "-3", "four"} {
		f.timeline.SetValue(bad)
		if f.validate() {
			t.Fatalf("timeline %q should fail validation", bad)
		}
		if _, ok := f.errors[fieldTimeline]; !ok {
			t.Fatalf("timeline %q missing its error", bad)
		}
	}
	f.timeline.SetValue("6")
	if !f.validate() {
		t.Fatalf("timeline 6 should validate, errors: %v", f.errors)
	}
}

func TestBriefFormValidateBrandLink(t *testing.T) {
	f := newBriefForm()
	fillValidBrief(f)
	for _, bad := range []string{"not a url", "example.com", "/relative/path"} {
		f.brandLink.SetValue(bad)
		if f.validate() {
			t.Fatalf("brand link %q should fail validation", bad)
		}
	}
	f.brandLink.SetValue("https://brand.example.com/about")
	if !f.validate() {
		t.Fatalf("full URL should validate, errors: %v", f.errors)
	}
}

func TestBriefFormPayloadShape(t *testing.T) {
	f := newBriefForm()
	fillValidBrief(f)
	f.channels["Blog"] = true
	f.instructions.SetValue("Keep the tone playful")

	payload := f.payload()
	if payload["productOrService"] != "Specialty coffee subscription" {
		t.Fatalf("productOrService = %v", payload["productOrService"])
	}
	if payload["timelineUnit"] != timelineUnitWeeks {
		t.Fatalf("timelineUnit = %v", payload["timelineUnit"])
	}
	channels, ok := payload["channels"].([]string)
	if !ok {
		t.Fatalf("channels has type %T", payload["channels"])
	}
	// Render order, not toggle order.
	want := []string{"Instagram", "Blog"}
	if len(channels) != len(want) {
		t.Fatalf("channels = %v", channels)
	}
	for i := range want {
		if channels[i] != want[i] {
			t.Fatalf("channels = %v, want %v", channels, want)
		}
	}
	if payload["additionalInstructions"] != "Keep the tone playful" {
		t.Fatalf("additionalInstructions = %v", payload["additionalInstructions"])
	}
}

func TestBriefFormChannelToggle(t *testing.T) {
	f := newBriefForm()
	f.setFocus(fieldChannels)
	if _, handled := f.handleToggleKey(" "); !handled {
		t.Fatalf("space should toggle the channel under the cursor")
	}
	if !f.channels[channelNames[0]] {
		t.Fatalf("first channel should be on")
	}
	f.handleToggleKey("right")
	f.handleToggleKey(" ")
	if !f.channels[channelNames[1]] {
		t.Fatalf("second channel should be on after moving right")
	}
}

func TestBriefFormTimelineUnitToggle(t *testing.T) {
	f := newBriefForm()
	f.setFocus(fieldTimelineUnit)
	if f.timelineUnit != timelineUnitWeeks {
		t.Fatalf("default unit = %q", f.timelineUnit)
	}
	f.handleToggleKey(" ")
	if f.timelineUnit != timelineUnitDays {
		t.Fatalf("unit after toggle = %q", f.timelineUnit)
	}
}

func TestBriefFormInlineErrorsRendered(t *testing.T) {
	f := newBriefForm()
	f.validate()
	view := f.View(80)
	if !strings.Contains(view, "Product or service is required") {
		t.Fatalf("inline error missing from view")
	}
}
