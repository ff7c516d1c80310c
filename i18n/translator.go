package i18n

import "sync/atomic"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.lookup(code)
	if k := data["key"]; k != "" {
		return msg + ": " + k
	}
	return msg
}

func (t dictTranslator) lookup(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "indentation":
			return "インデントが不正です"
		case "invalid_key":
			return "キーが不正です"
		case "invalid_value":
			return "値が不正です"
		case "sequence":
			return "行の順序が不正です"
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_key":
			return "未知のキーです"
		case "duplicate_key":
			return "キーが重複しています"
		case "internal":
			return "内部エラー"
		}
	default: // "en"
		switch code {
		case "indentation":
			return "invalid indentation"
		case "invalid_key":
			return "invalid key"
		case "invalid_value":
			return "invalid value"
		case "sequence":
			return "unexpected line"
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required property missing"
		case "unknown_key":
			return "unknown key"
		case "duplicate_key":
			return "duplicate key"
		case "internal":
			return "internal error"
		}
	}
	return code
}

// translatorBox lets an interface value live behind an atomic.Pointer.
type translatorBox struct{ tr Translator }

var current atomic.Pointer[translatorBox]

func init() { current.Store(&translatorBox{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja"). It is safe
// to call while other goroutines are translating.
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&translatorBox{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). A nil tr restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&translatorBox{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return current.Load().tr.Message(code, data)
}
