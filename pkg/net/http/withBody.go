// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/LerianStudio/datagage/pkg"
	cn "github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en2 "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// DecodeHandlerFunc is a handler which works with withBody decorator.
// It receives a struct which was decoded by withBody decorator before.
// Ex: json -> withBody -> DecodeHandlerFunc.
type DecodeHandlerFunc func(p any, c *fiber.Ctx) error

// ConstructorFunc representing a constructor of any type.
type ConstructorFunc func() any

// decoderHandler decodes payload coming from requests.
type decoderHandler struct {
	handler      DecodeHandlerFunc
	constructor  ConstructorFunc
	structSource any
}

var rawMessageType = reflect.TypeOf(json.RawMessage{})

func newOfType(s any) any {
	t := reflect.TypeOf(s)
	v := reflect.New(t.Elem())

	return v.Interface()
}

// WithBody decodes the request body into a fresh value of the type of s before calling h.
func WithBody(s any, h DecodeHandlerFunc) fiber.Handler {
	d := &decoderHandler{
		handler:      h,
		structSource: s,
	}

	return d.FiberHandlerFunc
}

// WithDecode is WithBody with an explicit constructor for the payload.
func WithDecode(c ConstructorFunc, h DecodeHandlerFunc) fiber.Handler {
	d := &decoderHandler{
		handler:     h,
		constructor: c,
	}

	return d.FiberHandlerFunc
}

// FiberHandlerFunc decodes the body, rejects unknown fields and type mismatches,
// validates the struct and finally calls the wrapped handler.
func (d *decoderHandler) FiberHandlerFunc(c *fiber.Ctx) error {
	var s any

	if d.constructor != nil {
		s = d.constructor()
	} else {
		s = newOfType(d.structSource)
	}

	bodyBytes := c.Body()

	trimmedBody := strings.TrimSpace(string(bodyBytes))
	if len(trimmedBody) == 0 || trimmedBody == "null" {
		return BadRequest(c, pkg.ValidateBusinessError(cn.ErrMissingRequiredFields, "", "body"))
	}

	if err := json.Unmarshal(bodyBytes, s); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) || strings.Contains(err.Error(), "cannot unmarshal") {
			fieldName := extractFieldNameFromUnmarshalError(err.Error())
			knownFields := make(map[string]string)

			if fieldName != "" {
				knownFields[fieldName] = "Invalid type for this field"
			} else {
				knownFields["body"] = "Invalid type for this field"
			}

			return BadRequest(c, pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, knownFields, "", make(map[string]any)))
		}

		return BadRequest(c, pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, pkg.FieldValidations{"body": "Malformed JSON"}, "", make(map[string]any)))
	}

	if err := validateTypeMismatches(bodyBytes, s); err != nil {
		return BadRequest(c, err)
	}

	marshaled, err := json.Marshal(s)
	if err != nil {
		return err
	}

	var originalMap, marshaledMap map[string]any

	if err := json.Unmarshal(bodyBytes, &originalMap); err != nil {
		return BadRequest(c, pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, pkg.FieldValidations{"body": "Expected a JSON object"}, "", make(map[string]any)))
	}

	if err := json.Unmarshal(marshaled, &marshaledMap); err != nil {
		return err
	}

	diffFields := findUnknownFields(originalMap, marshaledMap)

	if len(diffFields) > 0 {
		err := pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, pkg.FieldValidations{}, "", diffFields)
		return BadRequest(c, err)
	}

	if err := ValidateStruct(s); err != nil {
		return BadRequest(c, err)
	}

	return d.handler(s, c)
}

// findUnknownFields finds fields that are present in the original map but not in the marshaled map.
// Zero values dropped by omitempty are not reported.
func findUnknownFields(original, marshaled map[string]any) map[string]any {
	diffFields := make(map[string]any)

	numKinds := pkg.GetMapNumKinds()

	for key, value := range original {
		if numKinds[reflect.ValueOf(value).Kind()] && value == 0.0 {
			continue
		}

		marshaledValue, ok := marshaled[key]
		if !ok {
			if isOmittedZero(value) {
				continue
			}

			diffFields[key] = value

			continue
		}

		switch originalValue := value.(type) {
		case map[string]any:
			if marshaledMap, ok := marshaledValue.(map[string]any); ok {
				nestedDiff := findUnknownFields(originalValue, marshaledMap)
				if len(nestedDiff) > 0 {
					diffFields[key] = nestedDiff
				}
			} else if !reflect.DeepEqual(originalValue, marshaledValue) {
				diffFields[key] = value
			}

		case []any:
			if marshaledArray, ok := marshaledValue.([]any); ok {
				arrayDiff := compareSlices(originalValue, marshaledArray)
				if len(arrayDiff) > 0 {
					diffFields[key] = arrayDiff
				}
			} else if !reflect.DeepEqual(originalValue, marshaledValue) {
				diffFields[key] = value
			}

		default:
			if !reflect.DeepEqual(value, marshaledValue) {
				diffFields[key] = value
			}
		}
	}

	return diffFields
}

func isOmittedZero(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// compareSlices compares two slices and returns differences.
func compareSlices(original, marshaled []any) []any {
	var diff []any

	for i, item := range original {
		if i >= len(marshaled) {
			diff = append(diff, item)
			continue
		}

		tmpMarshaled := marshaled[i]

		if originalMap, ok := item.(map[string]any); ok {
			if marshaledMap, ok := tmpMarshaled.(map[string]any); ok {
				nestedDiff := findUnknownFields(originalMap, marshaledMap)
				if len(nestedDiff) > 0 {
					diff = append(diff, nestedDiff)
				}
			}
		} else if !reflect.DeepEqual(item, tmpMarshaled) {
			diff = append(diff, item)
		}
	}

	for i := len(original); i < len(marshaled); i++ {
		diff = append(diff, marshaled[i])
	}

	return diff
}

// ValidateStruct validates a struct against defined validation rules, using the validator package.
func ValidateStruct(s any) error {
	v, trans := newValidator()

	k := reflect.ValueOf(s).Kind()
	if k == reflect.Ptr {
		k = reflect.ValueOf(s).Elem().Kind()
	}

	if k != reflect.Struct {
		return nil
	}

	err := v.Struct(s)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}

		for _, fieldError := range validationErrs {
			if fieldError.Tag() == "enginetype" {
				return pkg.ValidateBusinessError(cn.ErrInvalidEngineType, "", fmt.Sprintf("%v", fieldError.Value()))
			}
		}

		errPtr := malformedRequestErr(validationErrs, trans)

		return &errPtr
	}

	return nil
}

func fields(errs validator.ValidationErrors, trans ut.Translator) pkg.FieldValidations {
	l := len(errs)
	if l > 0 {
		fields := make(pkg.FieldValidations, l)
		for _, e := range errs {
			fields[e.Field()] = e.Translate(trans)
		}

		return fields
	}

	return nil
}

func fieldsRequired(myMap pkg.FieldValidations) pkg.FieldValidations {
	result := make(pkg.FieldValidations)

	for key, value := range myMap {
		if strings.Contains(value, "required") {
			result[key] = value
		}
	}

	return result
}

func malformedRequestErr(err validator.ValidationErrors, trans ut.Translator) pkg.ValidationKnownFieldsError {
	invalidFieldsMap := fields(err, trans)

	requiredFields := fieldsRequired(invalidFieldsMap)

	var vErr pkg.ValidationKnownFieldsError

	_ = errors.As(pkg.ValidateBadRequestFieldsError(requiredFields, invalidFieldsMap, "", make(map[string]any)), &vErr)

	return vErr
}

//nolint:ireturn
func newValidator() (*validator.Validate, ut.Translator) {
	locale := en.New()
	uni := ut.New(locale, locale)

	trans, _ := uni.GetTranslator("en")

	v := validator.New()

	if err := en2.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("enginetype", validateEngineType)

	_ = v.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", formatErrorFieldName(fe.Namespace()))

		return t
	})

	_ = v.RegisterTranslation("gte", trans, func(ut ut.Translator) error {
		return ut.Add("gte", "{0} must be {1} or greater", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("gte", formatErrorFieldName(fe.Namespace()), fe.Param())

		return t
	})

	_ = v.RegisterTranslation("enginetype", trans, func(ut ut.Translator) error {
		return ut.Add("enginetype", "{0} must be one of the supported database types", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("enginetype", formatErrorFieldName(fe.Namespace()))

		return t
	})

	return v, trans
}

// validateEngineType accepts any declared engine type, implemented or not.
func validateEngineType(fl validator.FieldLevel) bool {
	return model.EngineType(fl.Field().String()).IsDeclared()
}

// formatErrorFieldName strips the struct name from a validator namespace.
func formatErrorFieldName(text string) string {
	re := regexp.MustCompile(`\.(.+)$`)

	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return matches[1]
	}

	return text
}

// validateTypeMismatches checks if the JSON payload has type mismatches with the struct definition
func validateTypeMismatches(bodyBytes []byte, s any) error {
	var originalMap map[string]any
	if err := json.Unmarshal(bodyBytes, &originalMap); err != nil {
		return pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, pkg.FieldValidations{"body": "Expected a JSON object"}, "", make(map[string]any))
	}

	val := reflect.ValueOf(s)
	if val.Kind() != reflect.Ptr {
		return nil
	}

	val = val.Elem()

	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		fieldType := typ.Field(i)

		jsonTag := fieldType.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		// json.RawMessage accepts any JSON value.
		if fieldType.Type == rawMessageType {
			continue
		}

		jsonName := strings.Split(jsonTag, ",")[0]

		originalValue, exists := originalMap[jsonName]
		if !exists {
			continue
		}

		kind := fieldType.Type.Kind()
		if kind == reflect.Ptr {
			kind = fieldType.Type.Elem().Kind()
		}

		if mismatch := getTypeMismatch(originalValue, kind); mismatch != nil {
			return pkg.ValidateBadRequestFieldsError(pkg.FieldValidations{}, pkg.FieldValidations{
				jsonName: fmt.Sprintf("%s expects %s but received %s", jsonName, kind.String(), mismatch.receivedType),
			}, "", make(map[string]any))
		}
	}

	return nil
}

// typeMismatchInfo holds information about a type mismatch
type typeMismatchInfo struct {
	receivedType string
}

// getTypeMismatch checks if there's a type mismatch and returns mismatch info
func getTypeMismatch(originalValue any, fieldKind reflect.Kind) *typeMismatchInfo {
	switch originalValue.(type) {
	case string:
		if fieldKind == reflect.Map || fieldKind == reflect.Slice {
			return &typeMismatchInfo{receivedType: "string"}
		}
	case map[string]any:
		if isSimpleType(fieldKind) {
			return &typeMismatchInfo{receivedType: "object"}
		}
	case []any:
		if isSimpleType(fieldKind) {
			return &typeMismatchInfo{receivedType: "array"}
		}
	case float64:
		if fieldKind == reflect.String || fieldKind == reflect.Map || fieldKind == reflect.Slice {
			return &typeMismatchInfo{receivedType: "number"}
		}
	case bool:
		if fieldKind == reflect.String || fieldKind == reflect.Map || fieldKind == reflect.Slice {
			return &typeMismatchInfo{receivedType: "boolean"}
		}
	}

	return nil
}

// isSimpleType checks if the field kind is a simple type
func isSimpleType(fieldKind reflect.Kind) bool {
	return fieldKind == reflect.String || fieldKind == reflect.Int || fieldKind == reflect.Float64 || fieldKind == reflect.Bool
}

// extractFieldNameFromUnmarshalError extracts the field name from a JSON unmarshal error, e.g.
// "json: cannot unmarshal string into Go struct field Descriptor.port of type int".
func extractFieldNameFromUnmarshalError(errorMsg string) string {
	re := regexp.MustCompile(`struct field \w+\.(\w+)`)

	matches := re.FindStringSubmatch(errorMsg)
	if len(matches) > 1 {
		return matches[1]
	}

	re2 := regexp.MustCompile(`field (\w+) of type`)

	matches2 := re2.FindStringSubmatch(errorMsg)
	if len(matches2) > 1 {
		return matches2[1]
	}

	return ""
}
