package core

import (
	"regexp"
	"strings"

	"axiapac.com/hrms/utils"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func requireText(v *ValidationError, field, value, label string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, label+" is required")
	}
}

func requireEmail(v *ValidationError, field, value string) {
	switch {
	case strings.TrimSpace(value) == "":
		v.Add(field, "Email is required")
	case !ValidEmail(strings.TrimSpace(value)):
		v.Add(field, "Email is invalid")
	}
}

func requireDate(v *ValidationError, field, value, label string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, label+" is required")
		return
	}
	if _, err := utils.ParseDate(value); err != nil {
		v.Add(field, label+" must be a date in yyyy-MM-dd format")
	}
}
