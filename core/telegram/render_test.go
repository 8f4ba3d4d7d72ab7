package telegram

import (
	"strings"
	"testing"

	"finbot/core/dialog"
)

func TestMarkupForPreservesLayout(t *testing.T) {
	buttons := [][]dialog.Button{
		{{Label: "➕ ADD INCOME", Action: dialog.ActionAddIncome}},
		{{Label: "FOOD", Action: dialog.ActionCategory, Payload: "FOOD"}},
	}
	markup := markupFor(buttons)
	if markup == nil {
		t.Fatal("nil markup")
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("got %d rows, want 2", len(markup.InlineKeyboard))
	}

	first := markup.InlineKeyboard[0][0]
	if first.Text != "➕ ADD INCOME" {
		t.Errorf("label = %q", first.Text)
	}
	if !strings.Contains(first.Data, dialog.ActionAddIncome) {
		t.Errorf("callback data %q missing action", first.Data)
	}

	second := markup.InlineKeyboard[1][0]
	if !strings.Contains(second.Data, "FOOD") {
		t.Errorf("callback data %q missing payload", second.Data)
	}
}

func TestMarkupForEmpty(t *testing.T) {
	if markupFor(nil) != nil {
		t.Fatal("expected nil markup for no buttons")
	}
}
