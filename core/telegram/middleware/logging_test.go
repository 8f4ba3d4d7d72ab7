package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallback(t *testing.T) {
	cases := []struct {
		name    string
		cb      *tele.Callback
		key     string
		payload string
	}{
		{"nil", nil, "", ""},
		{"unique set", &tele.Callback{Unique: "category", Data: "FOOD"}, "category", "FOOD"},
		{"raw with payload", &tele.Callback{Data: "\fcategory|FOOD"}, "category", "FOOD"},
		{"raw without payload", &tele.Callback{Data: "\fconfirm"}, "confirm", ""},
		{"empty payload kept", &tele.Callback{Data: "\fconfirm|"}, "confirm", ""},
	}
	for _, tc := range cases {
		key, payload := ParseCallback(tc.cb)
		if key != tc.key || payload != tc.payload {
			t.Errorf("%s: ParseCallback = (%q, %q), want (%q, %q)", tc.name, key, payload, tc.key, tc.payload)
		}
	}
}

func TestAlreadyLogged(t *testing.T) {
	if alreadyLogged(987654) {
		t.Fatal("first sighting reported as logged")
	}
	if !alreadyLogged(987654) {
		t.Fatal("second sighting not deduplicated")
	}
}
