package models

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("emoji", emojiOnly); err != nil {
		panic(err)
	}
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// emojiOnly reports whether every rune in the field belongs to the
// emoji character class. Joiners, variation selectors, skin-tone
// modifiers and keycap combiners are accepted so that composed emoji
// sequences pass as a whole.
func emojiOnly(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !isEmojiRune(r) {
			return false
		}
	}
	return true
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // symbols extended-A
		return true
	case r >= 0x2600 && r <= 0x26FF: // miscellaneous symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators (flags)
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF: // skin-tone modifiers
		return true
	case r == 0x200D: // zero-width joiner
		return true
	case r == 0xFE0F: // variation selector-16
		return true
	case r == 0x20E3: // combining keycap
		return true
	case r == 0x2B50 || r == 0x2B55: // star, heavy circle
		return true
	case r >= 0x2B1B && r <= 0x2B1C: // black/white large squares
		return true
	case r == 0x203C || r == 0x2049: // !! and !?
		return true
	case r >= 0x2190 && r <= 0x21FF: // arrows
		return true
	}
	return false
}
