// Package validation declares the field validation contracts for catalog
// entities, built on go-playground/validator. Results come back as a
// field-to-message map keyed by JSON field names so form controllers can
// surface them inline.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/shopkeep/pkg/catalog"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()

	// Error keys should match the wire field names, not Go field names.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		return name
	})
	return val
}

// Struct validates any tagged struct and returns field-keyed messages. Nested
// fields are keyed by their dotted path, e.g. "category.categoryName".
func Struct(s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return map[string]string{}
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = friendlyMessage(fe)
	}
	return out
}

// Category is the validation contract for category editing.
func Category(c catalog.Category) map[string]string {
	errs := Struct(c)
	if strings.TrimSpace(c.CategoryName) == "" {
		errs["categoryName"] = "is required"
	}
	return errs
}

// Product is the validation contract for product editing. Images counts both
// already-hosted URLs and locally staged files; the caller keeps that field
// in sync with the staging pipeline.
func Product(p catalog.Product) map[string]string {
	errs := Struct(p)
	if strings.TrimSpace(p.ProductName) == "" {
		errs["productName"] = "is required"
	}
	return errs
}

// fieldPath strips the root struct name from the error namespace, leaving
// the dotted JSON path of the offending field.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("requires at least %s entry", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
