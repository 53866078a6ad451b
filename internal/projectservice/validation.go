package projectservice

import "github.com/abrabant/brabantapi/internal/common"

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(name, 1, 100), "name", "must be between 1 and 100 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(v.CheckStringLength(description, 1, 300), "description", "must be at most 300 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validatePrivacy(v *common.Validator, privacy common.Privacy) {
	v.Check(privacy.Valid(), "privacy", "must be one of PRIVATE, PRIVATE-PREV, PUBLIC")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
