package waves

import (
	"github.com/adrianliechti/waves-mcp/pkg/tool"
)

const (
	ToolCreateClone = "createClone"
	ToolListClones  = "listClones"
	ToolDeleteClone = "deleteClone"
	ToolListVoices  = "listVoices"
	ToolSynthesize  = "ttsToWav"
	ToolCleanup     = "cleanupGeneratedAudio"
)

var modelParameter = map[string]any{
	"type":        "string",
	"description": "voice model, e.g. lightning-large",
	"default":     "lightning-large",
}

var definitions = []tool.Tool{
	{
		Name:        ToolCreateClone,
		Description: "Create a voice clone from a WAV sample. Returns the provider's clone record as JSON.",

		Parameters: map[string]any{
			"type": "object",

			"properties": map[string]any{
				"model": modelParameter,

				"displayName": map[string]any{
					"type":        "string",
					"description": "display name of the cloned voice",
				},

				"file": map[string]any{
					"type":        "string",
					"description": "base64 encoded WAV audio sample",
				},
			},

			"required": []string{"file"},
		},
	},
	{
		Name:        ToolListClones,
		Description: "List the cloned voices of a model.",

		Parameters: map[string]any{
			"type": "object",

			"properties": map[string]any{
				"model": modelParameter,
			},
		},
	},
	{
		Name:        ToolDeleteClone,
		Description: "Delete a cloned voice.",

		Parameters: map[string]any{
			"type": "object",

			"properties": map[string]any{
				"model": modelParameter,

				"voiceId": map[string]any{
					"type":        "string",
					"description": "id of the cloned voice to delete",
				},
			},

			"required": []string{"voiceId"},
		},
	},
	{
		Name:        ToolListVoices,
		Description: "List the available preset voices.",

		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		Name:        ToolSynthesize,
		Description: "Convert text to speech and save it as a WAV file. Returns a file resource with URI, size, duration and creation time.",

		Parameters: map[string]any{
			"type": "object",

			"properties": map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "text to synthesize",
				},

				"voiceId": map[string]any{
					"type":        "string",
					"description": "preset or cloned voice id",
				},

				"model": map[string]any{
					"type":        "string",
					"enum":        []string{"lightning", "lightning-large"},
					"default":     "lightning",
					"description": "synthesis model",
				},

				"language": map[string]any{
					"type":        "string",
					"description": "language code, required for lightning-large",
				},

				"outputFormat": map[string]any{
					"type":    "string",
					"enum":    []string{"wav"},
					"default": "wav",
				},

				"add_wav_header": map[string]any{
					"type":    "boolean",
					"default": true,
				},

				"sample_rate": map[string]any{
					"type":    "integer",
					"default": 24000,
				},

				"speed": map[string]any{
					"type":    "number",
					"default": 1.0,
				},

				"consistency": map[string]any{
					"type":    "number",
					"default": 0.5,
				},

				"similarity": map[string]any{
					"type":    "number",
					"default": 0.0,
				},

				"enhancement": map[string]any{
					"type":    "number",
					"default": 1.0,
				},

				"output_dir": map[string]any{
					"type":        "string",
					"description": "directory to store the file in, defaults to the server's output path",
				},
			},

			"required": []string{"text", "voiceId"},
		},
	},
	{
		Name:        ToolCleanup,
		Description: "Remove generated audio files older than the given number of minutes. Returns the count and names of deleted files.",

		Parameters: map[string]any{
			"type": "object",

			"properties": map[string]any{
				"older_than_minutes": map[string]any{
					"type":    "integer",
					"default": 60,
				},
			},
		},
	},
}
