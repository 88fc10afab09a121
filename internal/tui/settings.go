package tui

import (
	"fmt"

	"github.com/verte-zerg/keydrill/internal/model"
)

const durationStep = 5

type settingItem struct {
	label string
	value func(s model.Settings) string
	edit  func(s *model.Settings, up bool)
}

var settingItems = []settingItem{
	{
		label: "Total game time (sec)",
		value: func(s model.Settings) string { return fmt.Sprintf("%d", s.DurationSec) },
		edit: func(s *model.Settings, up bool) {
			s.DurationSec = step(s.DurationSec, durationStep, up, durationStep)
		},
	},
	{
		label: "History length",
		value: func(s model.Settings) string { return fmt.Sprintf("%d", s.HistoryLength) },
		edit:  func(s *model.Settings, up bool) { s.HistoryLength = step(s.HistoryLength, 1, up, 0) },
	},
	{
		label: "Future length",
		value: func(s model.Settings) string { return fmt.Sprintf("%d", s.FutureLength) },
		edit:  func(s *model.Settings, up bool) { s.FutureLength = step(s.FutureLength, 1, up, 0) },
	},
	boolItem("Include lowercase letters", func(s *model.Settings) *bool { return &s.Categories.Lowercase }),
	boolItem("Include capital letters", func(s *model.Settings) *bool { return &s.Categories.Uppercase }),
	boolItem("Include numbers", func(s *model.Settings) *bool { return &s.Categories.Digits }),
	boolItem("Include punctuation", func(s *model.Settings) *bool { return &s.Categories.Punctuation }),
	boolItem("Ten finger typing hint", func(s *model.Settings) *bool { return &s.TenFingerHint }),
	boolItem("Hardcore mode", func(s *model.Settings) *bool { return &s.Hardcore }),
}

func boolItem(label string, field func(s *model.Settings) *bool) settingItem {
	return settingItem{
		label: label,
		value: func(s model.Settings) string { return onOff(*field(&s)) },
		edit: func(s *model.Settings, _ bool) {
			f := field(s)
			*f = !*f
		},
	}
}

func step(v, delta int, up bool, floor int) int {
	if up {
		return v + delta
	}
	return max(v-delta, floor)
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
