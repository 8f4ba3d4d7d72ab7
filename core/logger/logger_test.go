package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"log/slog"
)

func TestContextHandlerAddsCorrelationAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := &contextHandler{inner: slog.NewJSONHandler(buf, nil)}
	log := slog.New(handler).With("component", "tg")

	ctx := WithRID(context.Background(), "12345:67:89")
	ctx = WithUpdateMeta(ctx, 12345, 89, 67)
	ctx = WithHandler(ctx, "text")

	log.LogAttrs(ctx, slog.LevelInfo, "update.received", slog.String("status", "ok"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}

	if record["component"] != "tg" {
		t.Errorf("component = %v", record["component"])
	}
	if record["rid"] != "9ix.1v.2h" {
		t.Errorf("rid = %v, want compacted form", record["rid"])
	}
	if record["user_id"] != float64(89) || record["chat_id"] != float64(67) {
		t.Errorf("ids = %v / %v", record["user_id"], record["chat_id"])
	}
	if record["update_id"] != float64(12345) {
		t.Errorf("update_id = %v", record["update_id"])
	}
	if record["handler"] != "text" {
		t.Errorf("handler = %v", record["handler"])
	}
}

func TestContextHandlerSkipsZeroValues(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := &contextHandler{inner: slog.NewJSONHandler(buf, nil)}
	log := slog.New(handler)

	log.LogAttrs(context.Background(), slog.LevelInfo, "bare")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	for _, key := range []string{"rid", "user_id", "chat_id", "update_id", "handler"} {
		if _, ok := record[key]; ok {
			t.Errorf("unexpected %s on context-free record", key)
		}
	}
}

func TestSelectLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := selectLevel(raw); got != want {
			t.Errorf("selectLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}
