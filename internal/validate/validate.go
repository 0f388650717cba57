// internal/validate/validate.go
//
// Payload validation built on go-playground/validator.
//
// Context
// -------
// Create and PUT payloads carry `validate:` tags; PATCH payloads check
// each submitted value with Var.  Either way the outcome is collected
// into a problem.ValidationError listing *every* failing field, because
// the 422 contract promises the client the full list, not just the
// first hit.
//
// Field names in the items use the JSON tag, never the Go identifier,
// so the client can match items against what it actually sent.
//
// Custom rules
// ------------
//   • `codigo` – business-code charset: letters, digits, `_`, or `-`.
//   • `cnpj`   – fourteen digits once punctuation is stripped.

package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ppghub/ppghub/internal/patch"
	"github.com/ppghub/ppghub/internal/problem"
)

var v = validator.New()

func init() {
	// Report JSON names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("codigo", func(fl validator.FieldLevel) bool {
		s := strings.ReplaceAll(strings.ReplaceAll(fl.Field().String(), "_", ""), "-", "")
		if s == "" {
			return false
		}
		for _, r := range s {
			ok := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
			if !ok {
				return false
			}
		}
		return true
	})

	_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		digits := DigitsOnly(fl.Field().String())
		return len(digits) == 14
	})
}

// Struct validates a tagged payload and returns nil when it passes.
func Struct(s any) *problem.ValidationError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	ve := &problem.ValidationError{}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError means a programming mistake, not user
		// input; let it surface as a 500 via panic in the caller's
		// recover boundary.
		panic(err)
	}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), message(fe.Tag(), fe.Param()), fe.Tag())
	}
	return ve
}

// Var checks one already-extracted value against a tag expression and
// appends a failure item to ve.  Used by PATCH resolvers, where only the
// submitted subset of fields is checked.
func Var(ve *problem.ValidationError, field string, value any, tag string) {
	err := v.Var(value, tag)
	if err == nil {
		return
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		panic(err)
	}
	for _, fe := range fieldErrs {
		ve.Add(field, message(fe.Tag(), fe.Param()), fe.Tag())
	}
}

// MergeString resolves one tri-state field onto a non-nullable string
// column: absent keys are skipped, explicit nulls are flagged, and
// submitted values are rule-checked before entering the changeset.
func MergeString(cs patch.Changeset, ve *problem.ValidationError, col string, f patch.Field[string], rules string) {
	if v, ok := f.Get(); ok {
		if rules != "" {
			Var(ve, col, v, rules)
		}
		cs.Set(col, v)
		return
	}
	if f.IsNull() {
		ve.Add(col, "campo não aceita null", "not_nullable")
	}
}

// MergeStringNullable is the nullable-column variant: explicit null
// clears the column, and submitted values are still rule-checked.
func MergeStringNullable(cs patch.Changeset, ve *problem.ValidationError, col string, f patch.Field[string], rules string) {
	if v, ok := f.Get(); ok {
		if rules != "" {
			Var(ve, col, v, rules)
		}
		cs.Set(col, v)
		return
	}
	if f.IsNull() {
		cs.Set(col, nil)
	}
}

// MergeInt mirrors MergeString for integer columns.
func MergeInt(cs patch.Changeset, ve *problem.ValidationError, col string, f patch.Field[int], rules string) {
	if v, ok := f.Get(); ok {
		if rules != "" {
			Var(ve, col, v, rules)
		}
		cs.Set(col, v)
		return
	}
	if f.IsNull() {
		ve.Add(col, "campo não aceita null", "not_nullable")
	}
}

// MergeIntNullable is the nullable-column variant of MergeInt.
func MergeIntNullable(cs patch.Changeset, ve *problem.ValidationError, col string, f patch.Field[int], rules string) {
	if v, ok := f.Get(); ok {
		if rules != "" {
			Var(ve, col, v, rules)
		}
		cs.Set(col, v)
		return
	}
	if f.IsNull() {
		cs.Set(col, nil)
	}
}

// MergeBool resolves a tri-state boolean onto a non-nullable column.
func MergeBool(cs patch.Changeset, ve *problem.ValidationError, col string, f patch.Field[bool]) {
	if err := patch.Merge(cs, col, f); err != nil {
		ve.Add(col, "campo não aceita null", "not_nullable")
	}
}

// message maps a rule tag to a short human sentence.  The tag itself is
// carried separately as the machine-readable kind.
func message(tag, param string) string {
	switch tag {
	case "required":
		return "campo obrigatório"
	case "min":
		return fmt.Sprintf("tamanho mínimo é %s", param)
	case "max":
		return fmt.Sprintf("tamanho máximo é %s", param)
	case "oneof":
		return "valor fora do conjunto permitido: " + param
	case "email":
		return "email inválido"
	case "gte":
		return "valor abaixo do mínimo " + param
	case "lte":
		return "valor acima do máximo " + param
	case "codigo":
		return "código deve conter apenas letras, números, _ ou -"
	case "cnpj":
		return "CNPJ deve ter 14 dígitos numéricos"
	case "url":
		return "URL inválida"
	default:
		return "valor inválido (regra " + tag + ")"
	}
}

// DigitsOnly strips everything but ASCII digits.  Shared by the cnpj
// rule and the payload normalizers.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
