package models

// TryAppInfoSchema is the JSON Schema a /trial-apps/{id} response body must satisfy.
var TryAppInfoSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "mode", "site"},
	"properties": map[string]any{
		"name": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"mode": map[string]any{
			"type": "string",
			"enum": []any{
				string(AppModeCompletion),
				string(AppModeWorkflow),
				string(AppModeChat),
				string(AppModeAdvancedChat),
				string(AppModeAgentChat),
				string(AppModeChannel),
				string(AppModeRAGPipeline),
			},
		},
		"site": map[string]any{
			"type":     "object",
			"required": []any{"title"},
			"properties": map[string]any{
				"title":     map[string]any{"type": "string"},
				"icon_type": map[string]any{"type": []any{"string", "null"}},
			},
		},
	},
}
