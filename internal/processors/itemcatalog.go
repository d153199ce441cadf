package processors

import (
	"strings"

	"gloss/internal/records"
)

// itemCategories is the fixed, ordered list of catalog fields scanned
// for items. Emission order follows this list.
var itemCategories = []string{
	"commonItems",
	"rareItems",
	"legendaryItems",
	"specialItems",
	"mythicItems",
}

func matchItemCatalog(script string) bool {
	return strings.Contains(strings.ToLower(script), "itemcontroller")
}

// itemCatalogProcessor handles item catalog scripts: per-category item
// lists where each item's description is the translatable text and the
// sub-path "category_name" addresses the item on re-application.
type itemCatalogProcessor struct{}

func (itemCatalogProcessor) Extract(view *ObjectView) ([]records.Entry, error) {
	var entries []records.Entry
	for _, category := range itemCategories {
		for _, item := range view.Fields().Trees(category) {
			name := item.String("name")
			description := item.String("description")
			if name == "" || description == "" {
				continue
			}
			entries = append(entries, newEntry(view.Key(category+"_"+name), description))
		}
	}
	return entries, nil
}

// Apply patches the description of every item whose category_name
// sub-path appears in the group, leaving the rest untouched.
func (itemCatalogProcessor) Apply(view *ObjectView, group []records.Entry) (bool, error) {
	translations := subPathTranslations(group)
	if len(translations) == 0 {
		return false, nil
	}

	changed := false
	for _, category := range itemCategories {
		for _, item := range view.Fields().Trees(category) {
			name := item.String("name")
			if name == "" || item.String("description") == "" {
				continue
			}
			if translation, ok := translations[category+"_"+name]; ok {
				item.Set("description", translation)
				changed = true
			}
		}
	}
	return changed, nil
}

// subPathTranslations maps each record's JsonPath sub-path to its
// translation, skipping untranslated or undecodable records.
func subPathTranslations(group []records.Entry) map[string]string {
	out := make(map[string]string, len(group))
	for _, entry := range group {
		if !entry.Translated() {
			continue
		}
		key, err := parseEntryContext(entry)
		if err != nil || key.SubPath == "" {
			continue
		}
		out[key.SubPath] = entry.Translation
	}
	return out
}
