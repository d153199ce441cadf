package processors

import (
	"strings"

	"gloss/internal/records"
)

// textFieldAliases are the recognized single-text field names, probed
// in this order. Different script generations disagree on the casing.
var textFieldAliases = []string{"m_text", "m_Text"}

func matchText(script string) bool {
	return strings.Contains(strings.ToLower(script), "text")
}

// textProcessor handles plain text components: one populated field
// under one of two aliases, one entry per object, no sub-path.
type textProcessor struct{}

func (textProcessor) Extract(view *ObjectView) ([]records.Entry, error) {
	_, original := populatedTextField(view)
	if original == "" {
		return nil, nil
	}
	return []records.Entry{newEntry(view.Key(""), original)}, nil
}

// Apply sets whichever alias field is populated. The first record with
// a translation wins; text objects carry a single string.
func (textProcessor) Apply(view *ObjectView, group []records.Entry) (bool, error) {
	translation := ""
	for _, entry := range group {
		if entry.Translated() {
			translation = entry.Translation
			break
		}
	}
	if translation == "" {
		return false, nil
	}

	field, original := populatedTextField(view)
	if original == "" {
		return false, nil
	}
	view.Fields().Set(field, translation)
	return true, nil
}

func populatedTextField(view *ObjectView) (field, value string) {
	for _, alias := range textFieldAliases {
		if v := view.Fields().String(alias); v != "" {
			return alias, v
		}
	}
	return "", ""
}
