package list

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shoppiq/list-gateway/internal/model"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		reply string
		want  model.Intent
	}{
		{"german add", "Bitte Milch hinzufügen", "", model.IntentAdded},
		{"english add", "please add milk", "", model.IntentAdded},
		{"keyword in reply only", "Milch bitte", "Ich habe Milch zur Liste hinzugefügt.", model.IntentAdded},
		{"german remove", "Entferne die Eier", "", model.IntentRemoved},
		{"english delete", "delete the eggs please", "", model.IntentRemoved},
		{"german modify", "Ändere die Menge auf 3", "", model.IntentModified},
		{"english change", "change butter to margarine", "", model.IntentModified},
		{"add wins over remove", "Füge Brot hinzu und entferne Käse", "", model.IntentAdded},
		{"remove wins over modify", "Lösche Saft und ändere Milch", "", model.IntentRemoved},
		{"question", "Was kostet die Liste ungefähr?", "Die Liste kostet etwa 40 Euro.", model.IntentNone},
		{"empty", "", "", model.IntentNone},
		{"case insensitive", "HINZUFÜGEN bitte", "", model.IntentAdded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.user, tt.reply))
		})
	}
}
