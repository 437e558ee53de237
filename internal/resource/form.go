package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go-clinic-dashboard/pkg/timezone"
	"go-clinic-dashboard/pkg/validator"
)

// ValidationError is the first rule a draft failed. Nothing is sent
// upstream when a draft does not validate.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Form owns the draft of one screen. Date and time inputs are wall-clock
// values in loc.
type Form[T any] struct {
	kind      *Kind[T]
	validator *validator.CustomValidator
	loc       *time.Location
	fields    map[string]bool
	draft     Draft
	// date-time fields whose loaded value carried a UTC offset
	zoned map[string]bool
}

func NewForm[T any](kind *Kind[T], v *validator.CustomValidator, loc *time.Location) *Form[T] {
	if loc == nil {
		loc = time.UTC
	}
	f := &Form[T]{
		kind:      kind,
		validator: v,
		loc:       loc,
		fields:    formFields(kind.NewForm()),
	}
	f.Reset()
	return f
}

// Reset seeds an empty draft with the kind's defaults.
func (f *Form[T]) Reset() {
	f.draft = Draft(f.kind.Defaults).Clone()
	f.zoned = nil
}

// Load seeds the draft from an existing record.
func (f *Form[T]) Load(record T) error {
	d, zoned, err := fromRecord(f.kind, record, f.loc)
	if err != nil {
		return err
	}
	f.draft = d
	f.zoned = zoned
	return nil
}

func (f *Form[T]) Draft() Draft {
	return f.draft.Clone()
}

func (f *Form[T]) SetField(name string, value interface{}, refs Catalogs) {
	f.SetFields(map[string]interface{}{name: value}, refs)
}

// SetFields assigns every value, then runs each derivation triggered by any
// of the assigned names once, in declaration order.
func (f *Form[T]) SetFields(values map[string]interface{}, refs Catalogs) {
	for name, value := range values {
		f.draft[name] = value
	}
	for _, d := range f.kind.Derivations {
		for _, trigger := range d.Triggers {
			if _, ok := values[trigger]; ok {
				d.Apply(f.draft, refs)
				break
			}
		}
	}
}

// Validate checks numeric inputs, then the form's struct rules, then that
// every reference names a loaded catalog entry. Only the first failure is
// reported.
func (f *Form[T]) Validate(refs Catalogs) error {
	coerced, err := coerceNumbers(f.kind.Numeric, f.draft.Clone())
	if err != nil {
		return err
	}

	raw, err := json.Marshal(coerced)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	form := f.kind.NewForm()
	if err := json.Unmarshal(raw, form); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{Field: typeErr.Field, Message: typeErr.Field + " is invalid"}
		}
		return &ValidationError{Message: "form contains invalid values"}
	}
	if err := f.validator.Validate(form); err != nil {
		field, msg := f.validator.FirstError(err)
		return &ValidationError{Field: field, Message: msg}
	}

	for _, ref := range f.kind.References {
		ids := coerced.IDs(ref.Field)
		if len(ids) == 0 {
			if ref.Optional {
				continue
			}
			return &ValidationError{Field: ref.Field, Message: ref.Field + " is required"}
		}
		if !ref.Multiple {
			ids = ids[:1]
		}
		for _, id := range ids {
			if !refs.Has(ref.Collection, id) {
				return &ValidationError{
					Field:   ref.Field,
					Message: fmt.Sprintf("%s does not match any known %s", ref.Field, strings.ReplaceAll(ref.Collection, "_", " ")),
				}
			}
		}
	}
	return nil
}

// ToPayload produces the request body: date and time inputs are recombined,
// numeric strings become numbers and fields the form does not expose are
// dropped.
func (f *Form[T]) ToPayload() (map[string]interface{}, error) {
	return toPayload(f.kind, f.fields, f.draft, f.loc, f.zoned)
}

// toPayload keeps a recombined date-time naive unless the loaded record
// carried an offset, in which case the wall-clock value is sent with loc's
// offset so the instant is preserved.
func toPayload[T any](kind *Kind[T], fields map[string]bool, draft Draft, loc *time.Location, zoned map[string]bool) (map[string]interface{}, error) {
	d := draft.Clone()
	drop := map[string]bool{}
	for _, dt := range kind.DateTimes {
		if dt.TimeField == "" {
			continue
		}
		if date := d.String(dt.DateField); date != "" {
			value := CombineDateTime(date, d.String(dt.TimeField))
			if zoned[dt.Field] {
				if t, ok := timezone.Parse(value, loc); ok {
					value = t.Format(time.RFC3339)
				}
			}
			d[dt.Field] = value
		}
		drop[dt.TimeField] = true
		if dt.DateField != dt.Field {
			drop[dt.DateField] = true
		}
	}
	for _, name := range kind.ClientOnly {
		drop[name] = true
	}

	d, err := coerceNumbers(kind.Numeric, d)
	if err != nil {
		return nil, err
	}

	payload := make(map[string]interface{}, len(d))
	for k, v := range d {
		if drop[k] {
			continue
		}
		if !fields[k] && !isDateTimeTarget(kind, k) {
			continue
		}
		payload[k] = v
	}
	return payload, nil
}

func isDateTimeTarget[T any](kind *Kind[T], name string) bool {
	for _, dt := range kind.DateTimes {
		if dt.Field == name && dt.TimeField != "" {
			return true
		}
	}
	return false
}

func coerceNumbers(names []string, d Draft) (Draft, error) {
	for _, name := range names {
		s, ok := d[name].(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			delete(d, name)
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return nil, &ValidationError{Field: name, Message: name + " must be a number"}
		}
		d[name] = json.Number(s)
	}
	return d, nil
}

// FromRecord builds a draft from a record, splitting date-time fields into
// separate date and time inputs. Values carrying an offset are converted to
// wall-clock time in loc first.
func FromRecord[T any](kind *Kind[T], record T, loc *time.Location) (Draft, error) {
	d, _, err := fromRecord(kind, record, loc)
	return d, err
}

func fromRecord[T any](kind *Kind[T], record T, loc *time.Location) (Draft, map[string]bool, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, nil, fmt.Errorf("encode record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	d := Draft{}
	if err := dec.Decode(&d); err != nil {
		return nil, nil, fmt.Errorf("decode record: %w", err)
	}

	zoned := map[string]bool{}
	for _, dt := range kind.DateTimes {
		value := d.String(dt.Field)
		date, clock := SplitDateTime(value)
		if timezone.HasOffset(value) {
			if t, ok := timezone.Parse(value, loc); ok {
				date, clock = t.Format("2006-01-02"), t.Format("15:04")
				zoned[dt.Field] = true
			}
		}
		if dt.TimeField == "" {
			if date != "" {
				d[dt.DateField] = date
			}
			continue
		}
		d[dt.DateField] = date
		d[dt.TimeField] = clock
	}
	return d, zoned, nil
}

// formFields lists the json names of a form struct's fields.
func formFields(form interface{}) map[string]bool {
	fields := map[string]bool{}
	t := reflect.TypeOf(form)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fields
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fields[name] = true
	}
	return fields
}
