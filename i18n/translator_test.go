package i18n

import (
	"sync"
	"testing"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("duplicate_key", nil); msg == "duplicate_key" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("duplicate_key", nil); msg == "duplicate key" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_KeyAndUnknownCode(t *testing.T) {
	if msg := T("required", map[string]string{"key": "app.version"}); msg != "required property missing: app.version" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected the code back, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("internal", nil); msg != "X-internal" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
}

func TestSetLanguage_ConcurrentWithT(t *testing.T) {
	defer SetLanguage("en")
	want := map[string]bool{"duplicate key": true, "キーが重複しています": true}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					SetLanguage("ja")
				} else {
					SetLanguage("en")
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if msg := T("duplicate_key", nil); !want[msg] {
					t.Errorf("unexpected message %q", msg)
					return
				}
			}
		}()
	}
	wg.Wait()
}
