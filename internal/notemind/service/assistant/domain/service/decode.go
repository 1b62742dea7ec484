package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/kiosk404/echonote/internal/notemind/service/assistant/domain/entity"
	"github.com/kiosk404/echonote/pkg/utils/json"
)

// Decoded is the outcome of parsing a payload: either Value (Parsed) or the
// untouched Raw text together with the reason parsing failed.
type Decoded[T any] struct {
	Value T
	Raw   string
	Err   error
}

func (d Decoded[T]) Parsed() bool {
	return d.Err == nil
}

func parsed[T any](v T, raw string) Decoded[T] {
	return Decoded[T]{Value: v, Raw: raw}
}

func rawOnly[T any](raw string, err error) Decoded[T] {
	return Decoded[T]{Raw: raw, Err: err}
}

var errNoJSONObject = errors.New("no JSON object found")

// extractJSONObject pulls the first balanced {...} out of a model reply that
// may be wrapped in prose or markdown fences. Braces inside JSON strings do
// not count toward the balance.
func extractJSONObject(reply string) (string, error) {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	start := strings.Index(s, "{")
	if start < 0 {
		return "", errNoJSONObject
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errNoJSONObject
}

// decodeModelJSON parses the JSON object in a model reply into T.
func decodeModelJSON[T any](reply string) Decoded[T] {
	obj, err := extractJSONObject(reply)
	if err != nil {
		return rawOnly[T](reply, err)
	}
	var v T
	if err := json.UnmarshalString(obj, &v); err != nil {
		return rawOnly[T](reply, err)
	}
	return parsed(v, reply)
}

type listedRecord struct {
	Filename *string `json:"filename"`
	Size     *int64  `json:"size"`
}

// decodeListing parses list-type payloads. Each content item may hold one
// record, an array of records or arrays nested further; all are flattened
// in input order.
func decodeListing(payload []string) Decoded[[]entity.ListedItem] {
	raw := strings.Join(payload, "\n")
	if len(payload) == 0 {
		return rawOnly[[]entity.ListedItem](raw, errors.New("empty payload"))
	}

	var records []json.RawMessage
	for _, item := range payload {
		if err := flattenRecords(json.RawMessage(item), &records); err != nil {
			return rawOnly[[]entity.ListedItem](raw, err)
		}
	}

	items := make([]entity.ListedItem, 0, len(records))
	for _, rec := range records {
		var r listedRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			return rawOnly[[]entity.ListedItem](raw, err)
		}
		if r.Filename == nil || r.Size == nil {
			return rawOnly[[]entity.ListedItem](raw, fmt.Errorf("record %s lacks filename or size", rec))
		}
		items = append(items, entity.ListedItem{Filename: *r.Filename, Size: *r.Size})
	}
	return parsed(items, raw)
}

func flattenRecords(raw json.RawMessage, out *[]json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return errors.New("empty content item")
	}
	if trimmed[0] != '[' {
		*out = append(*out, trimmed)
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return err
	}
	for _, e := range elems {
		if err := flattenRecords(e, out); err != nil {
			return err
		}
	}
	return nil
}

// EventTime is the start or end of a calendar event: a timestamp for
// timed events or a bare date for all-day ones.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// CalendarEvent is one item of a calendar listing.
type CalendarEvent struct {
	ID          string     `json:"id"`
	Summary     string     `json:"summary"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Start       *EventTime `json:"start"`
	End         *EventTime `json:"end"`
}

type calendarListing struct {
	Success bool            `json:"success"`
	Events  []CalendarEvent `json:"events"`
	Error   string          `json:"error"`
}

type calendarCreation struct {
	Success  bool   `json:"success"`
	EventID  string `json:"event_id"`
	HTMLLink string `json:"html_link"`
	Summary  string `json:"summary"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Error    string `json:"error"`
}

func decodeObject[T any](payload []string) Decoded[T] {
	raw := strings.Join(payload, "\n")
	var v T
	if err := json.UnmarshalString(strings.TrimSpace(raw), &v); err != nil {
		return rawOnly[T](raw, err)
	}
	return parsed(v, raw)
}
