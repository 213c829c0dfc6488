package waves

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type SpeechRequest struct {
	Model string

	Text     string
	VoiceID  string
	Language string

	AddWavHeader bool

	SampleRate  int
	Speed       float64
	Consistency float64
	Similarity  float64
	Enhancement float64

	OutputFormat string
}

func (r *SpeechRequest) Validate() error {
	if r.Model != ModelLightning && r.Model != ModelLightningLarge {
		return fmt.Errorf("%w: %s", ErrUnsupportedModel, r.Model)
	}

	if r.Text == "" {
		return ErrMissingText
	}

	if r.VoiceID == "" {
		return ErrMissingVoice
	}

	if r.Model == ModelLightningLarge && r.Language == "" {
		return ErrMissingLanguage
	}

	if r.OutputFormat != "wav" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, r.OutputFormat)
	}

	if r.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive", ErrInvalidParameter)
	}

	if r.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive", ErrInvalidParameter)
	}

	if r.Consistency < 0 || r.Similarity < 0 || r.Enhancement < 0 {
		return fmt.Errorf("%w: consistency, similarity and enhancement must not be negative", ErrInvalidParameter)
	}

	return nil
}

// Speech synthesizes text and returns the raw audio bytes.
func (c *Client) Speech(ctx context.Context, r SpeechRequest) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	type bodyType struct {
		Text     string  `json:"text"`
		VoiceID  string  `json:"voice_id"`
		Language *string `json:"language,omitempty"`

		AddWavHeader bool `json:"add_wav_header"`

		SampleRate  int     `json:"sample_rate"`
		Speed       float64 `json:"speed"`
		Consistency float64 `json:"consistency"`
		Similarity  float64 `json:"similarity"`
		Enhancement float64 `json:"enhancement"`

		OutputFormat string `json:"output_format"`
	}

	body := bodyType{
		Text:    r.Text,
		VoiceID: r.VoiceID,

		AddWavHeader: r.AddWavHeader,

		SampleRate:  r.SampleRate,
		Speed:       r.Speed,
		Consistency: r.Consistency,
		Similarity:  r.Similarity,
		Enhancement: r.Enhancement,

		OutputFormat: r.OutputFormat,
	}

	if r.Model == ModelLightningLarge {
		body.Language = &r.Language
	}

	resp, err := c.Do(ctx, http.MethodPost, "/api/v1/"+r.Model+"/get_speech", &Request{
		JSON: body,
	})

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return data, nil
}
