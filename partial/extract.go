package partial

import (
	"regexp"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var (
	// AnswerAliases are the keys searched, in order, for the primary answer.
	AnswerAliases = []string{"answer", "content", "response"}

	// FollowUpAliases are the keys searched, in order, for follow-up questions.
	FollowUpAliases = []string{"followUpQuestions", "follow_up_questions", "followUp", "questions", "suggestions"}
)

// StructuredAnswer is the resolved shape of a structured reply.
type StructuredAnswer struct {
	Content           string   `json:"answer"`
	FollowUpQuestions []string `json:"followUpQuestions"`
}

// Answer resolves the primary answer of text using AnswerAliases.
func Answer(text string) string {
	return Resolve(text, AnswerAliases...)
}

// FollowUps resolves the follow-up questions of text using FollowUpAliases.
func FollowUps(text string) []string {
	return ResolveList(text, FollowUpAliases...)
}

// Parse resolves a complete StructuredAnswer. It never fails: missing fields
// come back empty.
func Parse(text string) StructuredAnswer {
	return StructuredAnswer{
		Content:           Answer(text),
		FollowUpQuestions: FollowUps(text),
	}
}

const fence = "```"

// StripFences removes a surrounding ``` or ```json code fence.
func StripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2*len(fence) || !strings.HasPrefix(trimmed, fence) || !strings.HasSuffix(trimmed, fence) {
		return text
	}
	inner := strings.TrimSuffix(trimmed, fence)
	if rest, ok := strings.CutPrefix(inner, fence+"json"); ok {
		inner = rest
	} else {
		inner = strings.TrimPrefix(inner, fence)
	}
	return strings.TrimSpace(inner)
}

// Resolve returns the first scalar value found under aliases. A complete
// document is parsed as JSON; if the whole document is a JSON string it is
// returned when no alias matches. Incomplete documents fall back to a
// best-effort scan for a string value. Objects, arrays and nulls never count
// as a match so raw JSON is not surfaced.
func Resolve(text string, aliases ...string) string {
	body := StripFences(text)
	if gjson.Valid(body) {
		doc := gjson.Parse(body)
		if doc.IsObject() {
			for _, alias := range aliases {
				if v := doc.Get(gjson.Escape(alias)); isScalar(v) {
					return v.String()
				}
			}
		}
		if doc.Type == gjson.String {
			return doc.String()
		}
		return ""
	}

	for _, alias := range aliases {
		if v, ok := scanString(body, alias); ok {
			return v
		}
	}
	return ""
}

// ResolveList returns the string items of the first array found under
// aliases. It only considers complete documents and returns an empty, non-nil
// slice otherwise.
func ResolveList(text string, aliases ...string) []string {
	body := StripFences(text)
	if !gjson.Valid(body) {
		return []string{}
	}
	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return []string{}
	}
	for _, alias := range aliases {
		v := doc.Get(gjson.Escape(alias))
		if !v.IsArray() {
			continue
		}
		items := make([]string, 0)
		for _, item := range v.Array() {
			if isScalar(item) {
				items = append(items, item.String())
			}
		}
		return items
	}
	return []string{}
}

func isScalar(v gjson.Result) bool {
	switch v.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return true
	default:
		return false
	}
}

var patterns sync.Map

func pattern(alias string) *regexp.Regexp {
	if re, ok := patterns.Load(alias); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?s)"` + regexp.QuoteMeta(alias) + `"\s*:\s*"((?:[^"\\]|\\.)*)`)
	actual, _ := patterns.LoadOrStore(alias, re)
	return actual.(*regexp.Regexp)
}

func scanString(body, alias string) (string, bool) {
	m := pattern(alias).FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return unescape(m[1]), true
}

var escapes = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
	`\/`, "/",
)

// partialEscape matches a \u escape cut short at the end of the text, or a
// high surrogate still waiting for its low half.
var partialEscape = regexp.MustCompile(`\\u(?:[0-9a-fA-F]{0,3}|[dD][89abAB][0-9a-fA-F]{2})$`)

// trimPartialEscape drops trailing \u escapes that are not complete yet. A
// backslash preceded by an odd number of backslashes is itself escaped.
func trimPartialEscape(raw string) string {
	for {
		loc := partialEscape.FindStringIndex(raw)
		if loc == nil {
			return raw
		}
		n := 0
		for i := loc[0] - 1; i >= 0 && raw[i] == '\\'; i-- {
			n++
		}
		if n%2 == 1 {
			return raw
		}
		raw = raw[:loc[0]]
	}
}

// unescape decodes a JSON string body. Bodies the JSON decoder accepts keep
// their \u escapes; anything else only gets the common escapes replaced.
func unescape(raw string) string {
	raw = trimPartialEscape(raw)
	var s string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &s); err == nil {
		return s
	}
	return escapes.Replace(raw)
}
