package collector

import (
	"strings"

	"github.com/tidwall/gjson"
)

// NotAvailable is the placeholder for provider fields that are missing.
const NotAvailable = "N/A"

// fieldOr reads path from doc and converts it with conv. Missing, null and
// blank string fields yield def.
func fieldOr[T any](doc gjson.Result, path string, def T, conv func(gjson.Result) T) T {
	r := doc.Get(path)
	if !r.Exists() || r.Type == gjson.Null {
		return def
	}
	if r.Type == gjson.String && strings.TrimSpace(r.Str) == "" {
		return def
	}
	return conv(r)
}

func asString(r gjson.Result) string { return strings.TrimSpace(r.String()) }
func asCode(r gjson.Result) string { return strings.ToUpper(strings.TrimSpace(r.String())) }
func asFloat(r gjson.Result) float64 { return r.Float() }

func asStrings(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// textField reads a display string, "N/A" when absent.
func textField(doc gjson.Result, path string) string {
	return fieldOr(doc, path, NotAvailable, asString)
}

// codeField reads an identifier such as a currency or symbol, upper-cased,
// "N/A" when absent.
func codeField(doc gjson.Result, path string) string {
	return fieldOr(doc, path, NotAvailable, asCode)
}
