// Package normalize turns persisted trip records into canonical domain.Trip
// values. Decoding is lenient per field and strict per document: a blob
// that is not a JSON object is rejected, while any individual field that is
// missing or mistyped falls back to its zero value.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// Kind classifies why a blob could not be decoded.
type Kind string

const (
	// KindEmptyInput means the blob was absent, empty, or only whitespace.
	KindEmptyInput Kind = "empty_input"
	// KindMalformedJSON means the blob was not a JSON object.
	KindMalformedJSON Kind = "malformed_json"
)

// Sentinels matched by errors.Is against a *DecodeError.
var (
	ErrEmptyInput    = errors.New("trip detail is empty")
	ErrMalformedJSON = errors.New("trip detail is not a JSON object")
)

// DecodeError is returned by Decode. Err holds the underlying parse error
// for diagnostics; it is never meant for end users.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
}

// Unwrap exposes both the kind sentinel and the parse cause.
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e *DecodeError) sentinel() error {
	if e.Kind == KindEmptyInput {
		return ErrEmptyInput
	}
	return ErrMalformedJSON
}

// KindOf reports the decode failure kind carried by err, or "" if err is not
// a decode failure.
func KindOf(err error) Kind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// Decode parses a trip-detail blob. A nil or blank blob yields KindEmptyInput;
// anything other than a JSON object yields KindMalformedJSON. On success
// every field of the result is populated, using "", 0 or an empty slice for
// fields the blob does not carry in a usable form.
func Decode(blob *string) (domain.TripDetail, error) {
	if blob == nil || strings.TrimSpace(*blob) == "" {
		return domain.TripDetail{}, &DecodeError{Kind: KindEmptyInput}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(*blob), &fields); err != nil {
		return domain.TripDetail{}, &DecodeError{Kind: KindMalformedJSON, Err: err}
	}
	// "null" unmarshals into a nil map without error.
	if fields == nil {
		return domain.TripDetail{}, &DecodeError{Kind: KindMalformedJSON, Err: errors.New("top-level value is null")}
	}

	return domain.TripDetail{
		Name:            stringField(fields["name"]),
		Description:     stringField(fields["description"]),
		EstimatedPrice:  stringField(fields["estimatedPrice"]),
		Duration:        intField(fields["duration"]),
		Budget:          stringField(fields["budget"]),
		TravelStyle:     stringField(fields["travelStyle"]),
		Country:         stringField(fields["country"]),
		Interests:       stringField(fields["interests"]),
		GroupType:       stringField(fields["groupType"]),
		BestTimeToVisit: stringList(fields["bestTimeToVisit"]),
		WeatherInfo:     stringList(fields["weatherInfo"]),
		Itinerary:       itinerary(fields["itinerary"]),
	}, nil
}

// stringField accepts a JSON string, or a JSON number kept as its literal
// text. Everything else becomes "".
func stringField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// intField accepts a JSON number (truncated toward zero) or a string holding
// one. Negative, non-finite and unparseable values become 0.
func intField(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// stringList keeps the string elements of a JSON array, in order.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	for _, el := range array(raw) {
		el = bytes.TrimSpace(el)
		if len(el) == 0 || el[0] != '"' {
			continue
		}
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func itinerary(raw json.RawMessage) []domain.DayPlan {
	out := []domain.DayPlan{}
	for i, el := range array(raw) {
		obj := object(el)
		if obj == nil {
			continue
		}
		day := intField(obj["day"])
		if day < 1 {
			day = i + 1
		}
		out = append(out, domain.DayPlan{
			Day:        day,
			Location:   stringField(obj["location"]),
			Activities: activities(obj["activities"]),
		})
	}
	return out
}

func activities(raw json.RawMessage) []domain.Activity {
	out := []domain.Activity{}
	for _, el := range array(raw) {
		obj := object(el)
		if obj == nil {
			continue
		}
		out = append(out, domain.Activity{
			Time:        stringField(obj["time"]),
			Description: stringField(obj["description"]),
		})
	}
	return out
}

// array returns the elements of a JSON array, or nil for any other value.
func array(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var els []json.RawMessage
	if err := json.Unmarshal(raw, &els); err != nil {
		return nil
	}
	return els
}

// object returns the members of a JSON object, or nil for any other value.
func object(raw json.RawMessage) map[string]json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return obj
}
