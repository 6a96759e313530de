// Package partial extracts displayable fields from JSON that may still be
// arriving token by token.
//
// While a structured answer streams in, the accumulated text is usually not
// valid JSON yet. Resolve first attempts a full parse and falls back to a
// pattern match that captures the field value up to the next unescaped quote
// or the end of the text, so a reader sees the answer grow before the
// document closes. Fields are looked up through ordered alias lists because
// models do not always honour the requested key names.
package partial
