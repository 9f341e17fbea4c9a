package list

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shoppiq/list-gateway/internal/model"
)

// Categories and Supermarkets are the enumerations offered to the model.
// They are advisory: the normalizer accepts any string it gets back.
var (
	Categories = []string{
		"Obst & Gemüse", "Fleisch & Fisch", "Milchprodukte", "Getränke",
		"Brot & Backwaren", "Tiefkühlkost", "Konserven", "Süßwaren",
		"Haushaltsartikel", "Sonstiges",
	}
	Supermarkets = []string{"REWE", "EDEKA", "ALDI", "LIDL", "Kaufland", "Netto"}
)

const (
	// maxHistoryProducts caps the historical product names embedded in
	// the generation prompt.
	maxHistoryProducts = 20

	// maxSimilarLists and maxSimilarItems cap the similar-list context
	// rendered into the chat system prompt.
	maxSimilarLists = 3
	maxSimilarItems = 5

	emptyListSentence = "Die Liste ist aktuell leer."
	noContextSentence = "Keine spezifischen Anforderungen"
)

// GenerationSystemPrompt instructs the model to answer with nothing but a
// JSON array of item objects.
func GenerationSystemPrompt(historyProducts []string) string {
	var b strings.Builder
	b.WriteString("Du bist ein intelligenter Einkaufslistenassistent.\n")
	b.WriteString("Erstelle eine detaillierte Einkaufsliste basierend auf den Benutzereinstellungen.\n\n")
	b.WriteString("WICHTIG: Antworte NUR mit einem gültigen JSON-Array im folgenden Format:\n")
	b.WriteString("[\n  {\n    \"name\": \"Produktname\",\n    \"quantity\": 1,\n    \"unit\": \"Stück\",\n")
	b.WriteString("    \"category\": \"Kategorie\",\n    \"estimated_price\": 2.50,\n")
	b.WriteString("    \"supermarket\": \"REWE\",\n    \"note\": \"Optional: Hinweise\"\n  }\n]\n\n")
	b.WriteString("Kategorien: " + strings.Join(Categories, ", ") + "\n\n")
	b.WriteString("Supermärkte: " + strings.Join(Supermarkets, ", ") + "\n\n")
	b.WriteString("Berücksichtige realistische deutsche Preise.")

	if len(historyProducts) > 0 {
		if len(historyProducts) > maxHistoryProducts {
			historyProducts = historyProducts[:maxHistoryProducts]
		}
		b.WriteString("\n\nDeine bisherigen Produkte: " + strings.Join(historyProducts, ", "))
	}
	return b.String()
}

// GenerationUserPrompt embeds the serialized settings and the free-text
// context into the user turn of the generation call.
func GenerationUserPrompt(settings map[string]any, context string) string {
	serialized, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		serialized = []byte("{}")
	}
	if context == "" {
		context = noContextSentence
	}
	return fmt.Sprintf(
		"Erstelle eine Einkaufsliste für folgende Einstellungen:\n%s\n\nZusätzlicher Kontext: %s\n\nErstelle eine sinnvolle Einkaufsliste mit 15-25 Produkten.",
		serialized, context,
	)
}

// RenderCurrentItems renders the client's loosely typed current items as a
// bulleted list for the chat system prompt.
func RenderCurrentItems(raws []map[string]any) string {
	if len(raws) == 0 {
		return emptyListSentence
	}

	var b strings.Builder
	for _, raw := range raws {
		item := Normalize(raw)
		fmt.Fprintf(&b, "- %s (x%d %s", item.Name, item.Quantity, item.Unit)
		if item.Supermarket != nil {
			b.WriteString(", " + *item.Supermarket)
		}
		b.WriteString(")")
		if item.Note != "" {
			b.WriteString(" – " + item.Note)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSimilarLists renders up to three similar lists with up to five
// items each as additional prompt context.
func RenderSimilarLists(lists []model.SimilarList) string {
	if len(lists) == 0 {
		return ""
	}
	if len(lists) > maxSimilarLists {
		lists = lists[:maxSimilarLists]
	}

	var b strings.Builder
	b.WriteString("Ähnliche frühere Listen:\n")
	for _, l := range lists {
		items := l.Items
		if len(items) > maxSimilarItems {
			items = items[:maxSimilarItems]
		}
		fmt.Fprintf(&b, "- %s: %s", l.Name, strings.Join(items, ", "))
		if len(l.Supermarkets) > 0 {
			b.WriteString(" (" + strings.Join(l.Supermarkets, ", ") + ")")
		}
		if l.Note != "" {
			b.WriteString(" – " + l.Note)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ChatSystemPrompt combines current list and similar-list context with the
// reply contract: answer questions directly, and on modification requests
// return the complete replacement JSON array, never a diff.
func ChatSystemPrompt(currentRendered, similarRendered string) string {
	var b strings.Builder
	b.WriteString("Du bist ein Einkaufslisten-Assistent.\n\n")
	b.WriteString("Aktuelle Einkaufsliste:\n" + currentRendered + "\n")
	if similarRendered != "" {
		b.WriteString("\n" + similarRendered + "\n")
	}
	b.WriteString("\nBeantworte Fragen zur Liste direkt.\n")
	b.WriteString("Wenn der Benutzer die Liste ändern möchte, antworte zusätzlich mit der VOLLSTÄNDIGEN neuen Liste als JSON-Array ")
	b.WriteString("(alle beibehaltenen, hinzugefügten und geänderten Produkte, kein Diff) im Format:\n")
	b.WriteString(`[{"uuid":"unique-id","name":"Produktname","quantity":1,"unit":"Stück","note":"","category":"Kategorie","isChecked":false,"supermarkt":"REWE","estimated_price":2.50}]`)
	return b.String()
}

// TruncateHistory keeps only the most recent turns. Older turns are
// dropped, not summarized.
func TruncateHistory(turns []model.ChatTurn, max int) []model.ChatTurn {
	if len(turns) <= max {
		return turns
	}
	return turns[len(turns)-max:]
}
