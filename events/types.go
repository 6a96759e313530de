package events

import (
	"errors"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	DelimStart = "start"
	DelimEnd   = "end"
)

var (
	delimJSON     = []byte(`{"type":"delim"}`)
	progressJSON  = []byte(`{"type":"progress"}`)
	resultJSON    = []byte(`{"type":"result"}`)
	errorJSON     = []byte(`{"type":"error"}`)
	cancelledJSON = []byte(`{"type":"cancelled"}`)
)

type Event interface {
	generationEvent()
}

type Delim struct {
	TaskID uuid.UUID `json:"task_id"`
	Delim  string    `json:"delim"`
}

func (Delim) generationEvent() {}

// MarshalJSON implements custom JSON marshaling for Delim
func (d Delim) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(delimJSON, "task_id", d.TaskID.String())
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(result, "delim", d.Delim)
}

// UnmarshalJSON implements custom JSON unmarshaling for Delim
func (d *Delim) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "delim")
	if err != nil {
		return err
	}
	if d.TaskID, err = taskID(doc); err != nil {
		return err
	}
	d.Delim = doc.Get("delim").String()
	return nil
}

// Progress reports one increment of a streaming task.
type Progress struct {
	TaskID uuid.UUID `json:"task_id"`
	// Delta is the increment as received from the stream.
	Delta string `json:"delta"`
	// Text is the value delivered to the progress callback: the cumulative
	// text, or the answer extracted from it for structured tasks.
	Text      string          `json:"text"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

func (Progress) generationEvent() {}

// MarshalJSON implements custom JSON marshaling for Progress
func (p Progress) MarshalJSON() ([]byte, error) {
	result, err := header(progressJSON, p.TaskID, p.Timestamp, p.Meta)
	if err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "delta", p.Delta); err != nil {
		return nil, err
	}
	return sjson.SetBytes(result, "text", p.Text)
}

// UnmarshalJSON implements custom JSON unmarshaling for Progress
func (p *Progress) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "progress")
	if err != nil {
		return err
	}
	if p.TaskID, p.Timestamp, p.Meta, err = readHeader(doc); err != nil {
		return err
	}
	p.Delta = doc.Get("delta").String()
	p.Text = doc.Get("text").String()
	return nil
}

// Result reports the successful completion of a task.
type Result struct {
	TaskID uuid.UUID `json:"task_id"`
	// Text is the final accumulated text.
	Text string `json:"text"`
	// Output is the JSON form of the value the task resolved with.
	Output    gjson.Result    `json:"output,omitempty"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

func (Result) generationEvent() {}

// MarshalJSON implements custom JSON marshaling for Result
func (r Result) MarshalJSON() ([]byte, error) {
	result, err := header(resultJSON, r.TaskID, r.Timestamp, r.Meta)
	if err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "text", r.Text); err != nil {
		return nil, err
	}
	if r.Output.Exists() {
		return sjson.SetRawBytes(result, "output", []byte(r.Output.Raw))
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Result
func (r *Result) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "result")
	if err != nil {
		return err
	}
	if r.TaskID, r.Timestamp, r.Meta, err = readHeader(doc); err != nil {
		return err
	}
	r.Text = doc.Get("text").String()
	r.Output = doc.Get("output")
	return nil
}

// Error reports the rejection of a task.
type Error struct {
	TaskID    uuid.UUID       `json:"task_id"`
	Err       error           `json:"error"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

func (Error) generationEvent() {}

func (e Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("task %s failed", e.TaskID)
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// MarshalJSON implements custom JSON marshaling for Error
func (e Error) MarshalJSON() ([]byte, error) {
	result, err := header(errorJSON, e.TaskID, e.Timestamp, e.Meta)
	if err != nil {
		return nil, err
	}
	if e.Err != nil {
		return sjson.SetBytes(result, "error", e.Err.Error())
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Error
func (e *Error) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "error")
	if err != nil {
		return err
	}
	if e.TaskID, e.Timestamp, e.Meta, err = readHeader(doc); err != nil {
		return err
	}
	if msg := doc.Get("error"); msg.Exists() {
		e.Err = errors.New(msg.String())
	}
	return nil
}

// Cancelled reports that the caller cancelled a task.
type Cancelled struct {
	TaskID    uuid.UUID       `json:"task_id"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
	Meta      gjson.Result    `json:"meta,omitempty"`
}

func (Cancelled) generationEvent() {}

// MarshalJSON implements custom JSON marshaling for Cancelled
func (c Cancelled) MarshalJSON() ([]byte, error) {
	return header(cancelledJSON, c.TaskID, c.Timestamp, c.Meta)
}

// UnmarshalJSON implements custom JSON unmarshaling for Cancelled
func (c *Cancelled) UnmarshalJSON(data []byte) error {
	doc, err := parse(data, "cancelled")
	if err != nil {
		return err
	}
	c.TaskID, c.Timestamp, c.Meta, err = readHeader(doc)
	return err
}

func header(marker []byte, id uuid.UUID, ts strfmt.DateTime, meta gjson.Result) ([]byte, error) {
	result, err := sjson.SetBytes(marker, "task_id", id.String())
	if err != nil {
		return nil, err
	}
	if !ts.IsZero() {
		if result, err = sjson.SetBytes(result, "timestamp", ts.String()); err != nil {
			return nil, err
		}
	}
	if meta.Exists() {
		if result, err = sjson.SetRawBytes(result, "meta", []byte(meta.Raw)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func parse(data []byte, kind string) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("invalid json: %s", data)
	}
	doc := gjson.ParseBytes(data)
	if msgType := doc.Get("type"); !msgType.Exists() || msgType.String() != kind {
		return gjson.Result{}, fmt.Errorf("missing or invalid type, expected '%s'", kind)
	}
	return doc, nil
}

func taskID(doc gjson.Result) (uuid.UUID, error) {
	raw := doc.Get("task_id")
	if !raw.Exists() {
		return uuid.Nil, fmt.Errorf("missing required field 'task_id'")
	}
	id, err := uuid.Parse(raw.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid task_id: %w", err)
	}
	return id, nil
}

func readHeader(doc gjson.Result) (uuid.UUID, strfmt.DateTime, gjson.Result, error) {
	id, err := taskID(doc)
	if err != nil {
		return uuid.Nil, strfmt.DateTime{}, gjson.Result{}, err
	}

	var ts strfmt.DateTime
	if raw := doc.Get("timestamp"); raw.Exists() {
		if err := ts.UnmarshalText([]byte(raw.String())); err != nil {
			return uuid.Nil, strfmt.DateTime{}, gjson.Result{}, fmt.Errorf("invalid timestamp: %w", err)
		}
	}
	return id, ts, doc.Get("meta"), nil
}

// ToJSON encodes any event with its type marker.
func ToJSON(event Event) ([]byte, error) {
	switch e := event.(type) {
	case Delim:
		return e.MarshalJSON()
	case Progress:
		return e.MarshalJSON()
	case Result:
		return e.MarshalJSON()
	case Error:
		return e.MarshalJSON()
	case Cancelled:
		return e.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown event type: %T", event)
	}
}

// FromJSON decodes an event produced by ToJSON.
func FromJSON(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json: %s", data)
	}

	var (
		event Event
		err   error
	)
	switch kind := gjson.GetBytes(data, "type").String(); kind {
	case "delim":
		var e Delim
		err = e.UnmarshalJSON(data)
		event = e
	case "progress":
		var e Progress
		err = e.UnmarshalJSON(data)
		event = e
	case "result":
		var e Result
		err = e.UnmarshalJSON(data)
		event = e
	case "error":
		var e Error
		err = e.UnmarshalJSON(data)
		event = e
	case "cancelled":
		var e Cancelled
		err = e.UnmarshalJSON(data)
		event = e
	default:
		return nil, fmt.Errorf("unknown event type: %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}
