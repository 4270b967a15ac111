package story

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	types "github.com/andora-ai/andora-backend/internal/domain"
)

//go:embed guidance.yaml
var guidanceYAML []byte

type guidanceProfile struct {
	Medium         string   `yaml:"medium"`
	AudienceFocus  string   `yaml:"audience_focus"`
	SuccessSignals []string `yaml:"success_signals"`
	ToneGuidelines []string `yaml:"tone_guidelines"`
	Cadence        string   `yaml:"cadence"`
}

var guidanceProfiles = loadGuidanceProfiles()

func loadGuidanceProfiles() map[string]guidanceProfile {
	var profiles map[string]guidanceProfile
	if err := yaml.Unmarshal(guidanceYAML, &profiles); err != nil {
		// The table is compiled in; a parse failure is a build defect.
		panic("guidance.yaml: " + err.Error())
	}
	return profiles
}

// BuildChannelGuidance maps a channel name (case-insensitive) to its static
// writing profile, falling back to a generic default for unknown channels.
// Known format sub-patterns append extra tone and success-signal entries
// without duplicating or removing base guidance.
func BuildChannelGuidance(channel, format string) types.ChannelGuidance {
	name := strings.ToLower(strings.TrimSpace(channel))
	profile, ok := guidanceProfiles[name]
	if !ok {
		profile = guidanceProfiles["default"]
	}

	g := types.ChannelGuidance{
		Channel:        channel,
		Medium:         profile.Medium,
		AudienceFocus:  profile.AudienceFocus,
		SuccessSignals: append([]string(nil), profile.SuccessSignals...),
		ToneGuidelines: append([]string(nil), profile.ToneGuidelines...),
		Cadence:        profile.Cadence,
	}

	f := strings.ToLower(format)
	if strings.Contains(f, "live") {
		g.ToneGuidelines = appendUnique(g.ToneGuidelines, "embrace imperfection, interact with viewers in real time")
		g.SuccessSignals = appendUnique(g.SuccessSignals, "live viewer count")
	}
	if strings.Contains(f, "carousel") {
		g.ToneGuidelines = appendUnique(g.ToneGuidelines, "one idea per slide, strong cover slide")
		g.SuccessSignals = appendUnique(g.SuccessSignals, "swipe-through rate")
	}
	if strings.Contains(f, "thread") {
		g.ToneGuidelines = appendUnique(g.ToneGuidelines, "first post must stand alone, number the rest")
		g.SuccessSignals = appendUnique(g.SuccessSignals, "full-thread reads")
	}
	return g
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
