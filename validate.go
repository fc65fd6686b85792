package watson

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaEncoder = schema.NewEncoder()
)

// nameTags are consulted in order to name a field in error messages, so a
// missing path parameter reads "customization_id must be provided".
var nameTags = []string{"path", "url", "json", "header", "form", "body"}

func init() {
	validate.RegisterTagNameFunc(fieldName)

	schemaEncoder.SetAliasTag("url")
	schemaEncoder.RegisterEncoder(CSV(nil), func(v reflect.Value) string {
		return strings.Join(v.Interface().(CSV), ",")
	})
	schemaEncoder.RegisterEncoder(float64(0), func(v reflect.Value) string {
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	})
	schemaEncoder.RegisterEncoder(time.Time{}, func(v reflect.Value) string {
		return v.Interface().(time.Time).UTC().Format(time.RFC3339)
	})
	// Registered encoders run before the omitempty check, so nil must be handled.
	schemaEncoder.RegisterEncoder((*time.Time)(nil), func(v reflect.Value) string {
		if v.IsNil() {
			return ""
		}
		return v.Interface().(*time.Time).UTC().Format(time.RFC3339)
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range nameTags {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// CSV is a list parameter sent as one comma-separated value
// (keywords=a,b,c) rather than as repeated keys. In JSON bodies it is
// likewise a single string.
type CSV []string

func (c CSV) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.Join(c, ","))
}

func (c *CSV) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = nil
	if s != "" {
		*c = strings.Split(s, ",")
	}
	return nil
}

// Validate checks the struct tags of an options struct. Fields tagged
// validate:"required" that are unset produce a *MissingArgumentError naming
// the parameter. A nil options pointer is reported as a missing argument.
func Validate(opts any) error {
	if opts == nil {
		return &MissingArgumentError{Field: "options"}
	}
	v := reflect.ValueOf(opts)
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return &MissingArgumentError{Field: "options"}
	}
	if reflect.Indirect(v).Kind() != reflect.Struct {
		return nil
	}
	if err := validate.Struct(opts); err != nil {
		return argumentError(err)
	}
	return nil
}

// ValidateModel checks that data, the JSON object model was decoded from,
// has every key tagged validate:"required" on the model. A present key is
// accepted whatever its value, so "" and 0 pass. Nested objects are
// checked too, and slice elements when the field is tagged dive.
func ValidateModel(model any, data []byte) error {
	v := reflect.ValueOf(model)
	if !v.IsValid() || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return nil
	}
	t := reflect.Indirect(v).Type()
	if t.Kind() != reflect.Struct {
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var missing []string
	missingKeys(t, raw, "", &missing)
	if len(missing) == 0 {
		return nil
	}
	errs := make([]error, len(missing))
	for i, prop := range missing {
		errs[i] = &MissingPropertyError{Model: t.Name(), Property: prop}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// missingKeys appends the path of every required key of t absent from raw.
func missingKeys(t reflect.Type, raw any, prefix string, missing *[]string) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && name == "" {
			if et := elem(f.Type); et.Kind() == reflect.Struct {
				missingKeys(et, raw, prefix, missing)
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		rules := strings.Split(f.Tag.Get("validate"), ",")
		val, present := obj[name]
		if !present {
			if slices.Contains(rules, "required") {
				*missing = append(*missing, prefix+name)
			}
			continue
		}
		switch ft := elem(f.Type); ft.Kind() {
		case reflect.Struct:
			missingKeys(ft, val, prefix+name+".", missing)
		case reflect.Slice, reflect.Array:
			et := elem(ft.Elem())
			if !slices.Contains(rules, "dive") || et.Kind() != reflect.Struct {
				continue
			}
			items, _ := val.([]any)
			for j, item := range items {
				missingKeys(et, item, fmt.Sprintf("%s%s[%d].", prefix, name, j), missing)
			}
		}
	}
}

func elem(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Time returns a pointer to v.
func Time(v time.Time) *time.Time { return &v }
