package ai

import (
	"context"
	"testing"

	"github.com/campuskit/askbot-core/internal/core/domain"
	"github.com/campuskit/askbot-core/internal/core/ports/driven/mocks"
)

func TestDetector_DetectUrdu(t *testing.T) {
	completer := mocks.NewMockChatCompleter(`{"detected_language": "Urdu"}`)
	d := NewDetector(completer)

	lang, err := d.Detect(context.Background(), "آپ کیسے ہیں")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang != domain.LanguageUrdu {
		t.Errorf("expected urdu, got %s", lang)
	}

	req := completer.LastRequest()
	if !req.JSONMode {
		t.Error("detection must use JSON mode")
	}
}

func TestDetector_DetectEnglish(t *testing.T) {
	d := NewDetector(mocks.NewMockChatCompleter(`{"detected_language": "english"}`))

	lang, err := d.Detect(context.Background(), "how are you")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang != domain.LanguageEnglish {
		t.Errorf("expected english, got %s", lang)
	}
}

func TestDetector_UnknownValue(t *testing.T) {
	d := NewDetector(mocks.NewMockChatCompleter(`{"detected_language": "klingon"}`))

	lang, err := d.Detect(context.Background(), "nuqneH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lang != domain.LanguageUnknown {
		t.Errorf("expected unknown, got %s", lang)
	}
}

func TestDetector_ExhaustionReturnsUnknown(t *testing.T) {
	d := NewDetector(mocks.Exhausted())

	lang, err := d.Detect(context.Background(), "anything")
	if err != nil {
		t.Fatalf("exhaustion must not surface an error, got %v", err)
	}
	if lang != domain.LanguageUnknown {
		t.Errorf("expected unknown after exhaustion, got %s", lang)
	}
}

func TestDetector_MalformedOutput(t *testing.T) {
	d := NewDetector(mocks.NewMockChatCompleter(`not json at all`))

	lang, err := d.Detect(context.Background(), "hello")
	if err == nil {
		t.Error("expected error for malformed output")
	}
	if lang != domain.LanguageUnknown {
		t.Errorf("expected unknown on parse failure, got %s", lang)
	}
}

func TestJSONField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		field   string
		want    string
		wantErr bool
	}{
		{"present", `{"text": "answer"}`, "text", "answer", false},
		{"missing", `{"other": "x"}`, "text", "", true},
		{"not a string", `{"text": 42}`, "text", "", true},
		{"invalid json", `{`, "text", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonField(tt.raw, tt.field)
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
