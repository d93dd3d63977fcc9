package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructUsesJSONNames(t *testing.T) {
	type req struct {
		CourseSlug string `json:"course_slug" validate:"required,slug"`
		Email      string `json:"email" validate:"omitempty,email"`
	}

	assert.Nil(t, Struct(&req{CourseSlug: "go-basics"}))
	assert.Equal(t, map[string]string{"course_slug": "course_slug is required!"}, Struct(&req{}))

	errs := Struct(&req{CourseSlug: "Go Basics", Email: "x"})
	assert.Contains(t, errs, "course_slug")
	assert.Equal(t, "Invalid email address!", errs["email"])
}
