package blogservice

import (
	"regexp"

	"github.com/abrabant/brabantapi/internal/common"
)

var EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 10, 100), "title", "must be between 10 and 100 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(v.CheckStringLength(description, 30, 300), "description", "must be between 30 and 300 characters long")
}

func validateCoverImagePath(v *common.Validator, path string) {
	v.Check(v.CheckStringLength(path, 1, 300), "coverImagePath", "must be between 1 and 300 characters long")
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
