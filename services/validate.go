package services

import (
	"regexp"

	"github.com/iamdew/yellostory-lunch/models"
)

// Only the shape is checked; 2021-02-31 passes.
var dateRegex = regexp.MustCompile(`^(19|20)\d{2}-(0[1-9]|1[012])-(0[1-9]|[12][0-9]|3[0-1])$`)

const DateLayout = "2006-01-02"

// ValidationError is a client input problem reported as HTTP 400.
// Code names the offending field and is empty for list filters.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

func ValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

type CreateLunchInput struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Foods    string `json:"foods"`
}

type RemoveLunchInput struct {
	Date     string `json:"date"`
	Category string `json:"category"`
}

// Each validator reports only the first failing check, in declaration order.

func ValidateFilter(f models.LunchFilter) error {
	switch {
	case f.StartDate != "" && !ValidDate(f.StartDate):
		return &ValidationError{Message: "시작일을 확인해주세요."}
	case f.EndDate != "" && !ValidDate(f.EndDate):
		return &ValidationError{Message: "종료일 확인해주세요."}
	}
	return nil
}

func ValidateCreate(in CreateLunchInput) error {
	switch {
	case in.Date == "":
		return &ValidationError{Code: "date", Message: "날짜를 입력해주세요."}
	case !ValidDate(in.Date):
		return &ValidationError{Code: "date", Message: "날짜를 확인해주세요."}
	case in.Category == "":
		return &ValidationError{Code: "category", Message: "카테고리를 입력해주세요."}
	case in.Foods == "":
		return &ValidationError{Code: "foods", Message: "식단표를 입력해주세요."}
	}
	return nil
}

func ValidateRemove(in RemoveLunchInput) error {
	switch {
	case in.Category == "":
		return &ValidationError{Code: "category", Message: "카테고리를 입력해주세요."}
	case in.Date == "":
		return &ValidationError{Code: "date", Message: "날짜를 입력해주세요."}
	case !ValidDate(in.Date):
		return &ValidationError{Code: "date", Message: "날짜를 확인해주세요."}
	}
	return nil
}
