package waves

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrianliechti/waves-mcp/pkg/audio"
	"github.com/adrianliechti/waves-mcp/pkg/tool"
	"github.com/adrianliechti/waves-mcp/pkg/waves"
)

var _ tool.Provider = (*Client)(nil)

// longest cleanup threshold representable as a time.Duration
const maxCleanupMinutes = math.MaxInt64 / int64(time.Minute)

var (
	errInvalidAudio = errors.New("file is not valid base64")
)

type Client struct {
	client *waves.Client
	store  *audio.Store

	maxAge time.Duration
}

func New(client *waves.Client, store *audio.Store, options ...Option) (*Client, error) {
	if client == nil {
		return nil, errors.New("missing waves client")
	}

	if store == nil {
		return nil, errors.New("missing audio store")
	}

	c := &Client{
		client: client,
		store:  store,

		maxAge: audio.DefaultMaxAge,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Tools(ctx context.Context) ([]tool.Tool, error) {
	return definitions, nil
}

// Execute runs the named tool. Failures are reported as error envelopes;
// only an unknown tool name yields a Go error.
func (c *Client) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	switch name {
	case ToolCreateClone:
		return c.createClone(ctx, parameters), nil

	case ToolListClones:
		return c.listClones(ctx, parameters), nil

	case ToolDeleteClone:
		return c.deleteClone(ctx, parameters), nil

	case ToolListVoices:
		return c.listVoices(ctx), nil

	case ToolSynthesize:
		return c.synthesize(ctx, parameters), nil

	case ToolCleanup:
		return c.cleanup(parameters), nil
	}

	return nil, tool.ErrInvalidTool
}

func (c *Client) createClone(ctx context.Context, parameters map[string]any) *tool.Result {
	p := struct {
		Model       string `json:"model"`
		DisplayName string `json:"displayName"`
		File        string `json:"file"`
	}{
		Model: waves.ModelLightningLarge,
	}

	if err := decodeParameters(parameters, &p); err != nil {
		return invalidInput(err)
	}

	if strings.TrimSpace(p.File) == "" {
		return invalidInput(waves.ErrMissingAudio)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(p.File))

	if err != nil {
		return invalidInput(errInvalidAudio)
	}

	result, err := c.client.AddVoice(ctx, waves.CloneRequest{
		Model:       p.Model,
		DisplayName: p.DisplayName,

		Audio: data,
	})

	if err != nil {
		return failure("create clone", err)
	}

	return jsonResult("waves://create-clone", result)
}

func (c *Client) listClones(ctx context.Context, parameters map[string]any) *tool.Result {
	p := struct {
		Model string `json:"model"`
	}{
		Model: waves.ModelLightningLarge,
	}

	if err := decodeParameters(parameters, &p); err != nil {
		return invalidInput(err)
	}

	result, err := c.client.ClonedVoices(ctx, p.Model)

	if err != nil {
		return failure("list clones", err)
	}

	return jsonResult("waves://clones", result)
}

func (c *Client) deleteClone(ctx context.Context, parameters map[string]any) *tool.Result {
	p := struct {
		Model   string `json:"model"`
		VoiceID string `json:"voiceId"`
	}{
		Model: waves.ModelLightningLarge,
	}

	if err := decodeParameters(parameters, &p); err != nil {
		return invalidInput(err)
	}

	if strings.TrimSpace(p.VoiceID) == "" {
		return invalidInput(waves.ErrMissingVoice)
	}

	result, err := c.client.DeleteVoice(ctx, p.Model, p.VoiceID)

	if err != nil {
		return failure("delete clone", err)
	}

	return jsonResult("waves://delete-clone", result)
}

func (c *Client) listVoices(ctx context.Context) *tool.Result {
	result, err := c.client.Voices(ctx)

	if err != nil {
		return failure("list voices", err)
	}

	return jsonResult("waves://voices", result)
}

func (c *Client) synthesize(ctx context.Context, parameters map[string]any) *tool.Result {
	p := struct {
		Text     string `json:"text"`
		VoiceID  string `json:"voiceId"`
		Model    string `json:"model"`
		Language string `json:"language"`

		OutputFormat string `json:"outputFormat"`
		AddWavHeader bool   `json:"add_wav_header"`

		SampleRate  int     `json:"sample_rate"`
		Speed       float64 `json:"speed"`
		Consistency float64 `json:"consistency"`
		Similarity  float64 `json:"similarity"`
		Enhancement float64 `json:"enhancement"`

		OutputDir string `json:"output_dir"`
	}{
		Model: waves.ModelLightning,

		OutputFormat: "wav",
		AddWavHeader: true,

		SampleRate:  24000,
		Speed:       1.0,
		Consistency: 0.5,
		Similarity:  0.0,
		Enhancement: 1.0,
	}

	if err := decodeParameters(parameters, &p); err != nil {
		return invalidInput(err)
	}

	req := waves.SpeechRequest{
		Model: p.Model,

		Text:     p.Text,
		VoiceID:  p.VoiceID,
		Language: p.Language,

		AddWavHeader: p.AddWavHeader,

		SampleRate:  p.SampleRate,
		Speed:       p.Speed,
		Consistency: p.Consistency,
		Similarity:  p.Similarity,
		Enhancement: p.Enhancement,

		OutputFormat: p.OutputFormat,
	}

	if err := req.Validate(); err != nil {
		return invalidInput(err)
	}

	data, err := c.client.Speech(ctx, req)

	if err != nil {
		return failure("tts", err)
	}

	file, err := c.store.Write(p.OutputDir, data)

	if err != nil {
		if errors.Is(err, audio.ErrInvalidHeader) {
			slog.Error("received invalid audio", "model", p.Model, "size", len(data), "error", err)
			return tool.NewError("tts failed: provider returned an invalid wav file")
		}

		slog.Error("failed to store audio", "dir", p.OutputDir, "error", err)
		return tool.NewError("tts failed: unable to store audio file")
	}

	uri := &url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(file.Path),
	}

	result := tool.NewResult(tool.Resource{
		URI:      uri.String(),
		MIMEType: file.MIMEType,

		Filename:  file.Name,
		Size:      &file.Size,
		Duration:  file.Duration,
		CreatedAt: &file.CreatedAt,
	})

	result.Meta = map[string]any{
		"output_dir": filepath.Dir(file.Path),
	}

	return result
}

func (c *Client) cleanup(parameters map[string]any) any {
	p := struct {
		OlderThanMinutes *int `json:"older_than_minutes"`
	}{}

	if err := decodeParameters(parameters, &p); err != nil {
		return invalidInput(err)
	}

	maxAge := c.maxAge

	if p.OlderThanMinutes != nil {
		if *p.OlderThanMinutes < 0 {
			return invalidInput(errors.New("older_than_minutes must not be negative"))
		}

		if int64(*p.OlderThanMinutes) > maxCleanupMinutes {
			return invalidInput(errors.New("older_than_minutes is too large"))
		}

		maxAge = time.Duration(*p.OlderThanMinutes) * time.Minute
	}

	report, err := c.store.Cleanup(maxAge)

	if err != nil {
		slog.Error("failed to clean up audio files", "path", c.store.Path(), "error", err)
		return tool.NewError("cleanup failed: unable to read output directory")
	}

	for _, f := range report.Failures {
		slog.Warn("failed to remove audio file", "file", f.Name, "error", f.Err)
	}

	return report
}

func decodeParameters(parameters map[string]any, v any) error {
	if len(parameters) == 0 {
		return nil
	}

	data, err := json.Marshal(parameters)

	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError

		if errors.As(err, &typeErr) {
			return fmt.Errorf("invalid type for %s: expected %s", typeErr.Field, typeErr.Type)
		}

		return err
	}

	return nil
}

func jsonResult(uri string, data json.RawMessage) *tool.Result {
	return tool.NewResult(tool.Resource{
		URI:      uri,
		MIMEType: "application/json",

		Text: string(data),
	})
}

func invalidInput(err error) *tool.Result {
	return tool.NewError("invalid input: " + err.Error())
}

func failure(op string, err error) *tool.Result {
	var apiErr *waves.APIError
	var netErr *waves.NetworkError

	switch {
	case errors.As(err, &apiErr):
		slog.Warn("waves request failed", "op", op, "status", apiErr.StatusCode, "body", apiErr.Body)
		return tool.NewError(fmt.Sprintf("%s failed: %d %s: %s", op, apiErr.StatusCode, apiErr.Status, apiErr.Body))

	case errors.As(err, &netErr):
		slog.Warn("waves request failed", "op", op, "error", netErr.Err)
		return tool.NewError(op + " failed: " + netErr.Error())

	case isInputError(err):
		return invalidInput(err)

	case errors.Is(err, waves.ErrMalformedResponse):
		slog.Error("waves returned a malformed response", "op", op)
		return tool.NewError(op + " failed: malformed response from provider")
	}

	slog.Error("unexpected error", "op", op, "error", err)
	return tool.NewError(op + " failed: internal error")
}

func isInputError(err error) bool {
	for _, target := range []error{
		waves.ErrInvalidModel,
		waves.ErrUnsupportedModel,
		waves.ErrUnsupportedFormat,
		waves.ErrMissingText,
		waves.ErrMissingVoice,
		waves.ErrMissingLanguage,
		waves.ErrMissingAudio,
		waves.ErrInvalidParameter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
