package category_test

import (
	"testing"

	"fringe/internal/domain/category"
)

// TestSlugify tests slug derivation from names.
func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Pottery & Ceramics", want: "pottery-ceramics"},
		{in: "  Wheel Throwing 101  ", want: "wheel-throwing-101"},
		{in: "Kids' Classes", want: "kids-classes"},
		{in: "---", want: ""},
		{in: "already-a-slug", want: "already-a-slug"},
	}

	for _, tt := range tests {
		if got := category.Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestCategory_Validate tests validation of Category.
func TestCategory_Validate(t *testing.T) {
	valid := category.Category{ID: "1", Name: "Pottery", Slug: "pottery", Kind: category.KindCourse}

	t.Run("valid category", func(t *testing.T) {
		c := valid
		if err := c.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		c := valid
		c.Name = " "
		if err := c.Validate(); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("bogus kind", func(t *testing.T) {
		c := valid
		c.Kind = "bundle"
		if err := c.Validate(); err == nil {
			t.Error("expected error for unknown kind")
		}
	})
}
