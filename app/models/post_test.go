package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"single emoji", "\U0001F354", false},
		{"several emoji", "\U0001F355\U0001F354\U0001F35F", false},
		{"heart with variation selector", "❤️", false},
		{"zwj sequence", "\U0001F469\u200D\U0001F680", false},
		{"skin tone modifier", "\U0001F44B\U0001F3FD", false},
		{"flag", "\U0001F1E7\U0001F1F7", false},
		{"empty", "", true},
		{"plain text", "hello", true},
		{"mixed text and emoji", "hi \U0001F354", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("\U0001F354", 256), true},
		{"at limit", strings.Repeat("\U0001F354", 255), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &Post{
				AuthorID: "user_123",
				Content:  tt.content,
			}
			err := post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostValidateRequiresAuthor(t *testing.T) {
	post := &Post{Content: "\U0001F354"}
	assert.Error(t, post.Validate())
}
