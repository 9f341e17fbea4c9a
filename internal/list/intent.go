package list

import (
	"strings"

	"github.com/shoppiq/list-gateway/internal/model"
)

// intentKeywords is the single authoritative keyword table. Order matters:
// the first category with a match wins, so "added" beats "removed" beats
// "modified" when a sentence mixes keywords.
var intentKeywords = []struct {
	intent model.Intent
	words  []string
}{
	{model.IntentAdded, []string{"hinzufügen", "hinzu", "füge", "ergänze", "dazu", "add"}},
	{model.IntentRemoved, []string{"entfernen", "entferne", "löschen", "lösche", "streiche", "weg", "remove", "delete"}},
	{model.IntentModified, []string{"ändern", "ändere", "ersetze", "aktualisiere", "modify", "change", "update"}},
}

// ClassifyIntent infers the requested action from the user utterance and
// the assistant reply. This is a keyword heuristic, not a semantic
// classifier: a keyword inside an unrelated sentence produces a false
// positive, which is accepted behavior.
func ClassifyIntent(userText, replyText string) model.Intent {
	user := strings.ToLower(userText)
	reply := strings.ToLower(replyText)

	for _, category := range intentKeywords {
		for _, word := range category.words {
			if strings.Contains(user, word) || strings.Contains(reply, word) {
				return category.intent
			}
		}
	}
	return model.IntentNone
}
