package validator_test

import (
	"errors"
	"testing"

	"github.com/calebh/storyspace/internal/platform/validator"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{
			name:      "lowercases and hyphenates",
			input:     "My First Blog",
			maxLength: 50,
			want:      "my-first-blog",
		},
		{
			name:      "strips special characters",
			input:     "Hello, World! (draft)",
			maxLength: 50,
			want:      "hello-world-draft",
		},
		{
			name:      "collapses repeated separators",
			input:     "a  --  b",
			maxLength: 50,
			want:      "a-b",
		},
		{
			name:      "truncates without trailing hyphen",
			input:     "one two three",
			maxLength: 8,
			want:      "one-two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.GenerateSlug(tt.input, tt.maxLength); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateSlugFormat(t *testing.T) {
	tests := []struct {
		name      string
		slug      string
		maxLength int
		wantErr   error
	}{
		{name: "valid slug", slug: "my-blog-1", maxLength: 50, wantErr: nil},
		{name: "empty slug", slug: "", maxLength: 50, wantErr: validator.ErrSlugEmpty},
		{name: "too long", slug: "abcdef", maxLength: 5, wantErr: validator.ErrSlugTooLong},
		{name: "uppercase rejected", slug: "My-Blog", maxLength: 50, wantErr: validator.ErrInvalidSlugFormat},
		{name: "spaces rejected", slug: "my blog", maxLength: 50, wantErr: validator.ErrInvalidSlugFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSlugFormat(tt.slug, tt.maxLength)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSlugFormat(%q) = %v, want %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestMakeSlugUniqueWithMaxLength(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		suffix    int
		maxLength int
		want      string
	}{
		{name: "zero suffix returns base", base: "my-blog", suffix: 0, maxLength: 50, want: "my-blog"},
		{name: "appends suffix", base: "my-blog", suffix: 2, maxLength: 50, want: "my-blog-2"},
		{name: "truncates base to fit suffix", base: "abcdefghij", suffix: 3, maxLength: 8, want: "abcdef-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validator.MakeSlugUniqueWithMaxLength(tt.base, tt.suffix, tt.maxLength); got != tt.want {
				t.Errorf("MakeSlugUniqueWithMaxLength(%q, %d, %d) = %q, want %q",
					tt.base, tt.suffix, tt.maxLength, got, tt.want)
			}
		})
	}
}
