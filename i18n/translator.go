// Package i18n provides short localized descriptions for issue codes.
package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

var catalogs = map[string]map[string]string{
	"en": {
		"invalid_type":     "invalid type",
		"invalid_literal":  "value does not equal the expected literal",
		"invalid_enum":     "value is not a member of the enum",
		"required":         "required property missing",
		"unexpected_index": "unexpected index",
		"unknown_key":      "unknown key",
		"nan":              "number is NaN",
		"infinite":         "number is not finite",
		"refinement":       "constraint not satisfied",
		"transform":        "conversion failed",
		"duplicate_key":    "duplicate key",
		"parse_error":      "parse error",
		"truncated":        "truncated",
	},
	"ja": {
		"invalid_type":     "型が不正です",
		"invalid_literal":  "期待されたリテラルと一致しません",
		"invalid_enum":     "列挙値に含まれていません",
		"required":         "必須プロパティが不足しています",
		"unexpected_index": "想定外のインデックスです",
		"unknown_key":      "未知のキーです",
		"nan":              "数値が NaN です",
		"infinite":         "数値が有限ではありません",
		"refinement":       "制約を満たしていません",
		"transform":        "変換に失敗しました",
		"duplicate_key":    "キーが重複しています",
		"parse_error":      "解析エラー",
		"truncated":        "打ち切られました",
	},
}

// dictTranslator is the built-in dictionary-based Translator. Unknown codes
// fall back to English, then to the code itself.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, _ map[string]string) string {
	if m, ok := catalogs[t.lang][code]; ok {
		return m
	}
	if m, ok := catalogs["en"][code]; ok {
		return m
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
