package libs

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "delivery url with version",
			input:    "https://res.cloudinary.com/demo/image/upload/v1699999999/products/ab12cd34_candle.jpg",
			expected: "products/ab12cd34_candle",
		},
		{
			name:     "delivery url without version",
			input:    "https://res.cloudinary.com/demo/image/upload/products/ab12cd34_candle.png",
			expected: "products/ab12cd34_candle",
		},
		{
			name:     "plain public id passes through",
			input:    "products/ab12cd34_candle",
			expected: "products/ab12cd34_candle",
		},
		{
			name:     "non-numeric first segment kept",
			input:    "https://res.cloudinary.com/demo/image/upload/vases/blue.jpg",
			expected: "vases/blue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicIDFromURL(tt.input))
		})
	}
}

func TestValidateImageFile(t *testing.T) {
	svc := &CloudinaryService{}

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"jpg ok", "photo.jpg", 1024, false},
		{"webp ok", "photo.webp", 1024, false},
		{"uppercase extension ok", "photo.PNG", 1024, false},
		{"pdf rejected", "doc.pdf", 1024, true},
		{"no extension rejected", "photo", 1024, true},
		{"too large", "photo.jpg", 11 * 1024 * 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := svc.ValidateImageFile(header)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
