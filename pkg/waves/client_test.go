package waves_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/waves-mcp/pkg/waves"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *waves.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := waves.New(server.URL, waves.WithToken("test-token"), waves.WithClient(server.Client()))
	require.NoError(t, err)

	return c
}

func TestAuthorizationHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "/api/v1/lightning/get_voices", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"voices":[{"voiceId":"emily"}]}`))
	})

	result, err := c.Voices(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"voices":[{"voiceId":"emily"}]}`, string(result))
}

func TestAbsolutePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/custom", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := waves.New("http://invalid.localhost", waves.WithClient(server.Client()))
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), http.MethodGet, server.URL+"/custom", nil)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
	})

	_, err := c.ClonedVoices(context.Background(), waves.ModelLightningLarge)
	require.Error(t, err)

	var apiErr *waves.APIError
	require.True(t, errors.As(err, &apiErr))

	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Unauthorized", apiErr.Status)
	require.Equal(t, `{"error":"invalid api key"}`, apiErr.Body)
	require.Contains(t, err.Error(), "401")
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := waves.New(url)
	require.NoError(t, err)

	_, err = c.Voices(context.Background())

	var netErr *waves.NetworkError
	require.True(t, errors.As(err, &netErr))
	require.NotNil(t, errors.Unwrap(err))
}

func TestMalformedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway</html>"))
	})

	_, err := c.Voices(context.Background())
	require.ErrorIs(t, err, waves.ErrMalformedResponse)
}

func TestAddVoice(t *testing.T) {
	audio := []byte("RIFF....WAVEfmt ")

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/lightning-large/add_voice", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Alice", r.FormValue("displayName"))

		f, h, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		require.Equal(t, "voice.wav", h.Filename)
		require.Equal(t, "audio/wav", h.Header.Get("Content-Type"))

		data, _ := io.ReadAll(f)
		require.Equal(t, audio, data)

		w.Write([]byte(`{"voiceId":"voice_123"}`))
	})

	result, err := c.AddVoice(context.Background(), waves.CloneRequest{
		Model:       waves.ModelLightningLarge,
		DisplayName: "Alice",

		Audio: audio,
	})

	require.NoError(t, err)
	require.Equal(t, `{"voiceId":"voice_123"}`, string(result))
}

func TestDeleteVoice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/v1/lightning-large", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "voice_123", body["voiceId"])

		w.Write([]byte(`{"success":true}`))
	})

	result, err := c.DeleteVoice(context.Background(), waves.ModelLightningLarge, "voice_123")
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true}`, string(result))
}

func TestInvalidModelPath(t *testing.T) {
	c, err := waves.New("http://invalid.localhost")
	require.NoError(t, err)

	_, err = c.ClonedVoices(context.Background(), "../admin")
	require.ErrorIs(t, err, waves.ErrInvalidModel)
}

func TestSpeech(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		language string
		path     string
	}{
		{
			name:  "lightning",
			model: waves.ModelLightning,
			path:  "/api/v1/lightning/get_speech",
		},
		{
			name:     "lightning-large",
			model:    waves.ModelLightningLarge,
			language: "en",
			path:     "/api/v1/lightning-large/get_speech",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, tt.path, r.URL.Path)

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

				require.Equal(t, "hello", body["text"])
				require.Equal(t, "emily", body["voice_id"])
				require.Equal(t, float64(24000), body["sample_rate"])
				require.Equal(t, "wav", body["output_format"])

				if tt.language != "" {
					require.Equal(t, tt.language, body["language"])
				} else {
					require.NotContains(t, body, "language")
				}

				w.Header().Set("Content-Type", "audio/wav")
				w.Write([]byte("RIFFdata"))
			})

			data, err := c.Speech(context.Background(), waves.SpeechRequest{
				Model: tt.model,

				Text:     "hello",
				VoiceID:  "emily",
				Language: tt.language,

				AddWavHeader: true,

				SampleRate:  24000,
				Speed:       1,
				Consistency: 0.5,
				Enhancement: 1,

				OutputFormat: "wav",
			})

			require.NoError(t, err)
			require.Equal(t, []byte("RIFFdata"), data)
		})
	}
}

func TestSpeechValidation(t *testing.T) {
	valid := waves.SpeechRequest{
		Model:        waves.ModelLightning,
		Text:         "hello",
		VoiceID:      "emily",
		SampleRate:   24000,
		Speed:        1,
		OutputFormat: "wav",
	}

	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(r *waves.SpeechRequest)
		err    error
	}{
		{"unsupported model", func(r *waves.SpeechRequest) { r.Model = "thunder" }, waves.ErrUnsupportedModel},
		{"missing text", func(r *waves.SpeechRequest) { r.Text = "" }, waves.ErrMissingText},
		{"missing voice", func(r *waves.SpeechRequest) { r.VoiceID = "" }, waves.ErrMissingVoice},
		{"missing language", func(r *waves.SpeechRequest) { r.Model = waves.ModelLightningLarge }, waves.ErrMissingLanguage},
		{"unsupported format", func(r *waves.SpeechRequest) { r.OutputFormat = "mp3" }, waves.ErrUnsupportedFormat},
		{"invalid sample rate", func(r *waves.SpeechRequest) { r.SampleRate = 0 }, waves.ErrInvalidParameter},
		{"negative similarity", func(r *waves.SpeechRequest) { r.Similarity = -1 }, waves.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.modify(&r)

			require.ErrorIs(t, r.Validate(), tt.err)
		})
	}
}
