package waves

import (
	"errors"
	"regexp"
)

const (
	ModelLightning      = "lightning"
	ModelLightningLarge = "lightning-large"
)

var (
	ErrInvalidModel      = errors.New("invalid model")
	ErrUnsupportedModel  = errors.New("unsupported model")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrMissingText       = errors.New("text is required")
	ErrMissingVoice      = errors.New("voice id is required")
	ErrMissingLanguage   = errors.New("language is required for model " + ModelLightningLarge)
	ErrMissingAudio      = errors.New("audio file is required")
	ErrInvalidParameter  = errors.New("invalid parameter")
)

var modelPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._\-]*$`)

// ValidateModel checks that model can safely be used as a path segment.
func ValidateModel(model string) error {
	if !modelPattern.MatchString(model) {
		return ErrInvalidModel
	}

	return nil
}
