package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"goldenview/realty/internal/models"
)

var pinCodePattern = regexp.MustCompile(`^\d{6}$`)

// Validator turns candidate JSON into a normalized, validated property record.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	validate         *validator.Validate
	placeholderImage string
}

var (
	defaultValidator     *Validator
	defaultValidatorOnce sync.Once
)

// Default returns a shared Validator using the stock placeholder image.
func Default() *Validator {
	defaultValidatorOnce.Do(func() {
		defaultValidator = New(DefaultPlaceholderImage)
	})
	return defaultValidator
}

// ValidateAndNormalize runs the shared Validator over a candidate.
func ValidateAndNormalize(candidate []byte) (*models.Property, error) {
	return Default().ValidateAndNormalize(candidate)
}

// New builds a Validator. placeholderImage replaces an empty image list.
func New(placeholderImage string) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(models.Enum)
		return ok && e.IsValid()
	})
	_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pinCodePattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(models.Property)
		if p.PropertyType.RequiresLandType() && p.LandType == "" {
			sl.ReportError(p.LandType, "landType", "LandType", "landtype", string(p.PropertyType))
		}
	}, models.Property{})

	return &Validator{validate: v, placeholderImage: placeholderImage}
}

// presence records whether keys that are required but may legitimately be zero
// were sent at all.
type presence struct {
	Price *float64 `json:"price"`
	Area  *struct {
		Total *float64 `json:"total"`
	} `json:"area"`
}

// ValidateAndNormalize decodes candidate on top of the schema defaults,
// normalizes it and validates the result. On failure the error is a
// ValidationErrors holding every problem found, not just the first.
func (v *Validator) ValidateAndNormalize(candidate []byte) (*models.Property, error) {
	trimmed := bytes.TrimSpace(candidate)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ValidationErrors{{Message: "property must be a JSON object"}}
	}

	errs, trimmed, err := decodeMismatches(trimmed)
	if err != nil {
		return nil, ValidationErrors{{Message: fmt.Sprintf("malformed property JSON: %v", err)}}
	}
	p := models.NewProperty()
	if err := json.Unmarshal(trimmed, p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, ValidationErrors{{Message: fmt.Sprintf("malformed property JSON: %v", err)}}
		}
		// Only reached for a mismatch decodeMismatches could not strip.
		if !errs.Has(typeErr.Field) {
			errs = append(errs, FieldError{Field: typeErr.Field, Message: "must be " + describeKind(typeErr.Type)})
		}
	}

	// Normalize drops landType for types that do not use it, so an
	// out-of-set value has to be caught before that.
	if p.LandType != "" && !p.LandType.IsValid() {
		errs = append(errs, FieldError{Field: "landType", Message: fmt.Sprintf("'%s' is not a valid value for landType", p.LandType)})
	}

	var sent presence
	_ = json.Unmarshal(trimmed, &sent)
	if sent.Price == nil && !errs.Has("price") {
		errs = append(errs, FieldError{Field: "price", Message: "price is required"})
	}
	if (sent.Area == nil || sent.Area.Total == nil) && !errs.Has("area.total") {
		errs = append(errs, FieldError{Field: "area.total", Message: "area.total is required"})
	}

	Normalize(p, v.placeholderImage)

	for _, fe := range v.Check(p) {
		if !errs.Has(fe.Field) {
			errs = append(errs, fe)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return p, nil
}

// Check validates an already decoded record and returns every violation.
func (v *Validator) Check(p *models.Property) ValidationErrors {
	err := v.validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		out = append(out, FieldError{Field: field, Message: message(field, fe)})
	}
	return out
}

// maxMismatches bounds how many wrongly typed fields one candidate may report.
const maxMismatches = 64

// decodeMismatches finds every field whose JSON type does not fit the record.
// encoding/json reports only the first mismatch, so each offending field is
// reported, removed from the document, and decoding retried. The returned
// document no longer contains the offending fields.
func decodeMismatches(doc []byte) (ValidationErrors, []byte, error) {
	var errs ValidationErrors
	var tree interface{}
	for i := 0; i < maxMismatches; i++ {
		err := json.Unmarshal(doc, models.NewProperty())
		var typeErr *json.UnmarshalTypeError
		if err == nil || !errors.As(err, &typeErr) {
			return errs, doc, err
		}
		errs = append(errs, FieldError{Field: typeErr.Field, Message: "must be " + describeKind(typeErr.Type)})

		if tree == nil {
			dec := json.NewDecoder(bytes.NewReader(doc))
			dec.UseNumber()
			if err := dec.Decode(&tree); err != nil {
				return errs, doc, err
			}
		}
		if typeErr.Field == "" || !dropPath(tree, strings.Split(typeErr.Field, ".")) {
			return errs, doc, nil
		}
		if doc, err = json.Marshal(tree); err != nil {
			return errs, doc, err
		}
	}
	return errs, doc, nil
}

// dropPath deletes the value at path from a generic JSON tree. Arrays on the
// way are descended element by element, matching how encoding/json names
// fields inside slices. Keys match case-insensitively, as the decoder does.
func dropPath(node interface{}, path []string) bool {
	switch n := node.(type) {
	case map[string]interface{}:
		for key, child := range n {
			if !strings.EqualFold(key, path[0]) {
				continue
			}
			if len(path) == 1 {
				delete(n, key)
				return true
			}
			return dropPath(child, path[1:])
		}
	case []interface{}:
		dropped := false
		for _, el := range n {
			if dropPath(el, path) {
				dropped = true
			}
		}
		return dropped
	}
	return false
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "enum":
		return fmt.Sprintf("'%v' is not a valid value for %s", fe.Value(), field)
	case "pincode":
		return "zip code must be exactly 6 digits"
	case "email":
		return "must be a valid email address"
	case "landtype":
		return fmt.Sprintf("landType is required when propertyType is %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "a whole number"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Struct, reflect.Map:
		return "an object"
	}
	return "a valid " + t.String()
}
