package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf16"
)

func SetHeader(w http.ResponseWriter, name string, value string) {
	w.Header().Set(name, value)
}

func GetHeader(r *http.Request, name string) string {
	return r.Header.Get(name)
}

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return GetHeader(r, "HX-Request") == "true"
}

// TriggerEvents sets the HX-Trigger header. The JSON is kept ASCII-only
// (non-ASCII runes as \u escapes) so the header survives intact.
func TriggerEvents(w http.ResponseWriter, events map[string]any) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return err
	}
	SetHeader(w, "HX-Trigger", asciiJSON(string(raw)))
	return nil
}

func asciiJSON(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}
