package ai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoJSONObject - в тексте не нашлось ни одного JSON-объекта.
var ErrNoJSONObject = errors.New("no JSON object found in text")

// ExtractFirstJSONObject ищет в произвольном тексте первую сбалансированную
// '{...}' подстроку верхнего уровня и возвращает ее как сырой JSON.
// Ответ модели - недоверенный текст: скобки внутри строковых литералов
// и экранированные кавычки учитываются при поиске пары.
func ExtractFirstJSONObject(text string) (json.RawMessage, error) {
	start := -1
	braceLevel := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			braceLevel++
		case '}':
			if start < 0 {
				continue
			}
			braceLevel--
			if braceLevel == 0 {
				candidate := text[start : i+1]
				var raw json.RawMessage
				if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
					return nil, fmt.Errorf("extracted substring is not valid JSON: %w", err)
				}
				return raw, nil
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return nil, ErrNoJSONObject
}
