package processors

import (
	"strings"

	"gloss/internal/assetgraph"
	"gloss/internal/records"
)

func matchDropdown(script string) bool {
	return strings.Contains(strings.ToLower(script), "dropdown")
}

// dropdownProcessor handles dropdown components: every non-empty option
// string under m_Options.m_Options, one entry per option, no sub-path.
type dropdownProcessor struct{}

func (dropdownProcessor) Extract(view *ObjectView) ([]records.Entry, error) {
	var entries []records.Entry
	for _, option := range dropdownOptions(view) {
		original := option.String("m_Text")
		if original == "" {
			continue
		}
		entries = append(entries, newEntry(view.Key(""), original))
	}
	return entries, nil
}

// Apply matches options by original text value rather than list
// position, so reordering or insertion between extraction and
// application stays sound. Two distinct options sharing identical
// original text both receive the same translation.
func (dropdownProcessor) Apply(view *ObjectView, group []records.Entry) (bool, error) {
	translations := make(map[string]string, len(group))
	for _, entry := range group {
		if entry.Translated() {
			translations[entry.Original] = entry.Translation
		}
	}
	if len(translations) == 0 {
		return false, nil
	}

	changed := false
	for _, option := range dropdownOptions(view) {
		if translation, ok := translations[option.String("m_Text")]; ok {
			option.Set("m_Text", translation)
			changed = true
		}
	}
	return changed, nil
}

func dropdownOptions(view *ObjectView) []assetgraph.Tree {
	options, ok := view.Fields().Child("m_Options")
	if !ok {
		return nil
	}
	return options.Trees("m_Options")
}
