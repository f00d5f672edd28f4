package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type Validator struct {
	location string
	field    string
	value    *string
}

func (rv *Validator) Required() *CustomError {
	if rv.value == nil {
		return &CustomError{Location: rv.location, Param: rv.field, Msg: "is required"}
	}

	return nil
}

func (rv *Validator) Empty() *CustomError {
	if utf8.RuneCountInString(*rv.value) == 0 {
		return &CustomError{Location: rv.location, Param: rv.field, Value: *rv.value,
			Msg: "cannot be blank"}
	}

	return nil
}

func (rv *Validator) Blank() *CustomError {
	if strings.TrimSpace(*rv.value) == "" {
		return &CustomError{Location: rv.location, Param: rv.field, Value: *rv.value,
			Msg: "cannot be blank"}
	}

	return nil
}

func (rv *Validator) MaxLength(max int) *CustomError {
	lenStr := utf8.RuneCountInString(*rv.value)
	if lenStr > max {
		return &CustomError{Location: rv.location, Param: rv.field, Value: *rv.value,
			Msg: fmt.Sprintf("must be at most %d characters long", max)}
	}

	return nil
}

func (rv *Validator) Custom(validate func(string) bool, msg string) *CustomError {
	if !validate(*rv.value) {
		return &CustomError{Location: rv.location, Param: rv.field, Value: *rv.value, Msg: msg}
	}

	return nil
}

func mergeErrors(validations ...*CustomError) []*CustomError {
	result := make([]*CustomError, 0, 2)

	for _, err := range validations {
		if err == nil {
			continue
		}

		result = append(result, err)
	}

	return result
}
