package llm

// ChatCompletionEnvelopeSchema is the minimal shape we need from a
// chat-completions response: a first choice carrying a string message content.
func ChatCompletionEnvelopeSchema() map[string]any {
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []any{"choices"},
		"properties": map[string]any{
			"choices": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"message"},
					"properties": map[string]any{
						"message": map[string]any{
							"type":     "object",
							"required": []any{"content"},
							"properties": map[string]any{
								"role":    map[string]any{"type": "string"},
								"content": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	}
}

// ModelListSchema matches GET /models responses.
func ModelListSchema() map[string]any {
	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []any{"data"},
		"properties": map[string]any{
			"data": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":       "object",
					"required":   []any{"id"},
					"properties": map[string]any{"id": map[string]any{"type": "string"}},
				},
			},
		},
	}
}
