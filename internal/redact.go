package internal

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/theplant/luhn"
)

const (
	RedactedMask   = "[REDACTED]"
	truncateSuffix = "...[truncated]"

	minCardDigits = 13
	maxCardDigits = 19
)

var (
	sensitiveKey = regexp.MustCompile(`(?i)(card|^pan$|cvv|cvc|token|secret|password|authorization|iban)`)
	digitRun     = regexp.MustCompile(`\d(?:[ -]?\d)*`)
)

// Redact serializes payload to JSON and masks sensitive values: any value stored under
// a key that looks like card data or a credential, and any digit run holding a Luhn-valid
// 13 to 19 digit window.
func Redact(payload interface{}) string {
	raw, ok := payloadBytes(payload)
	if !ok {
		return maskCardNumbers(string(raw))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return maskCardNumbers(string(raw))
	}

	out, err := json.Marshal(redactValue(v))
	if err != nil {
		return maskCardNumbers(string(raw))
	}
	return string(out)
}

// Truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	cut := max - len(truncateSuffix)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncateSuffix
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func payloadBytes(payload interface{}) ([]byte, bool) {
	switch p := payload.(type) {
	case nil:
		return []byte("null"), true
	case []byte:
		return p, json.Valid(p)
	case json.RawMessage:
		return p, json.Valid(p)
	case string:
		return []byte(p), json.Valid([]byte(p))
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return []byte(err.Error()), false
	}
	return b, true
}

func redactValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if sensitiveKey.MatchString(k) && val != nil {
				t[k] = RedactedMask
				continue
			}
			t[k] = redactValue(val)
		}
		return t
	case []interface{}:
		for i := range t {
			t[i] = redactValue(t[i])
		}
		return t
	case string:
		return maskCardNumbers(t)
	case json.Number:
		if maskCardNumbers(t.String()) != t.String() {
			return RedactedMask
		}
		return t
	}
	return v
}

func maskCardNumbers(s string) string {
	return digitRun.ReplaceAllStringFunc(s, func(m string) string {
		if containsCard(m) {
			return RedactedMask
		}
		return m
	})
}

// containsCard reports whether any window of the run passes the Luhn check. The whole
// run is masked then, so digits glued to a card number cannot hide it.
func containsCard(run string) bool {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(run)
	for size := minCardDigits; size <= maxCardDigits && size <= len(digits); size++ {
		for i := 0; i+size <= len(digits); i++ {
			if luhnValid(digits[i : i+size]) {
				return true
			}
		}
	}
	return false
}

func luhnValid(digits string) bool {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// 19 digits may overflow, mask rather than leak
		return true
	}
	return luhn.Valid(n)
}
