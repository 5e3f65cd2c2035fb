package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateSlug kiểm tra custom validator slug.
func TestValidateSlug(t *testing.T) {
	InitValidator()
	require.NotNil(t, Validate)

	type input struct {
		Slug string `validate:"omitempty,slug"`
	}

	valid := []string{"", "ao-thun", "laptop-15", "a", "123"}
	for _, slug := range valid {
		assert.NoError(t, Validate.Struct(input{Slug: slug}), "Slug %q phải hợp lệ", slug)
	}

	invalid := []string{"Ao-Thun", "ao thun", "ao--thun", "-ao-thun", "ao-thun-", "áo-thun"}
	for _, slug := range invalid {
		assert.Error(t, Validate.Struct(input{Slug: slug}), "Slug %q phải bị từ chối", slug)
	}
}

// TestValidateNoXSS kiểm tra custom validator chặn nội dung XSS.
func TestValidateNoXSS(t *testing.T) {
	InitValidator()
	require.NotNil(t, Validate)

	type input struct {
		Name string `validate:"no_xss"`
	}

	assert.NoError(t, Validate.Struct(input{Name: "Áo thun nam"}))
	assert.NoError(t, Validate.Struct(input{Name: "Laptop 15.6 inch <2024>"}))

	dangerous := []string{
		"<script>alert(1)</script>",
		"javascript:alert(1)",
		"<img src=x onerror=alert(1)>",
		"<iframe src='x'>",
	}
	for _, value := range dangerous {
		assert.Error(t, Validate.Struct(input{Name: value}), "Giá trị %q phải bị từ chối", value)
	}
}
