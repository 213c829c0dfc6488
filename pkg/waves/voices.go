package waves

import (
	"context"
	"encoding/json"
	"net/http"
)

type CloneRequest struct {
	Model       string
	DisplayName string

	Audio []byte
}

func (r *CloneRequest) Validate() error {
	if err := ValidateModel(r.Model); err != nil {
		return err
	}

	if len(r.Audio) == 0 {
		return ErrMissingAudio
	}

	return nil
}

// Voices lists the preset voices.
func (c *Client) Voices(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/v1/lightning/get_voices", nil)
}

// AddVoice creates a voice clone from a WAV sample.
func (c *Client) AddVoice(ctx context.Context, r CloneRequest) (json.RawMessage, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return c.doJSON(ctx, http.MethodPost, "/api/v1/"+r.Model+"/add_voice", &Request{
		Form: map[string]string{
			"displayName": r.DisplayName,
		},

		Files: []FormFile{
			{
				Field: "file",
				Name:  "voice.wav",

				Content:     r.Audio,
				ContentType: "audio/wav",
			},
		},
	})
}

func (c *Client) ClonedVoices(ctx context.Context, model string) (json.RawMessage, error) {
	if err := ValidateModel(model); err != nil {
		return nil, err
	}

	return c.doJSON(ctx, http.MethodGet, "/api/v1/"+model+"/get_cloned_voices", nil)
}

func (c *Client) DeleteVoice(ctx context.Context, model, voiceID string) (json.RawMessage, error) {
	if err := ValidateModel(model); err != nil {
		return nil, err
	}

	if voiceID == "" {
		return nil, ErrMissingVoice
	}

	type bodyType struct {
		VoiceID string `json:"voiceId"`
	}

	return c.doJSON(ctx, http.MethodDelete, "/api/v1/"+model, &Request{
		JSON: bodyType{
			VoiceID: voiceID,
		},
	})
}
