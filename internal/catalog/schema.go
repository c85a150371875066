package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON schema definition for a content document. It is
// compiled on first use.
type Schema struct {
	Name       string
	Definition map[string]any

	once     sync.Once
	compiled *jsonschema.Schema
	err      error
}

var idDefinition = map[string]any{
	"type": []any{"string", "integer"},
}

var optionalIDDefinition = map[string]any{
	"type": []any{"string", "integer", "null"},
}

// CatalogSchema describes modulos.json: an ordered array of module descriptors.
var CatalogSchema = &Schema{
	Name: "catalog",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":             idDefinition,
				"titulo":         map[string]any{"type": "string", "minLength": 1},
				"subtitulo":      map[string]any{"type": "string"},
				"descricao":      map[string]any{"type": "string"},
				"icone":          map[string]any{"type": "string"},
				"duracao":        map[string]any{"type": "string"},
				"versiculoChave": map[string]any{"type": "string"},
			},
			"required": []any{"id", "titulo"},
		},
	},
}

// ContentSchema describes modulo<id>.json: sections, quiz and navigation.
var ContentSchema = &Schema{
	Name: "module-content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": idDefinition,
			"secoes": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"titulo":   map[string]any{"type": "string"},
						"conteudo": map[string]any{"type": "string"},
					},
					"required": []any{"titulo", "conteudo"},
				},
			},
			"quiz": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"titulo": map[string]any{"type": "string"},
					"minimoAprovacao": map[string]any{
						"type":    "integer",
						"minimum": 0,
						"maximum": 100,
					},
					"perguntas": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":       idDefinition,
								"pergunta": map[string]any{"type": "string"},
								"opcoes": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"id":    idDefinition,
											"texto": map[string]any{"type": "string"},
										},
										"required": []any{"id", "texto"},
									},
								},
								"correta": idDefinition,
							},
							"required": []any{"id", "pergunta", "opcoes", "correta"},
						},
					},
				},
				"required": []any{"perguntas"},
			},
			"moduloAnterior": optionalIDDefinition,
			"proximoModulo":  optionalIDDefinition,
		},
		"required": []any{"secoes"},
	},
}

// Validate checks raw JSON against the schema.
func (s *Schema) Validate(raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	s.once.Do(s.compile)
	if s.err != nil {
		return fmt.Errorf("compile schema %q: %w", s.Name, s.err)
	}
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("%s document: %w", s.Name, err)
	}
	return nil
}

func (s *Schema) compile() {
	// The compiler takes decoded JSON, not Go maps holding typed slices.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		s.err = err
		return
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		s.err = err
		return
	}

	url := "hagios://schema/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		s.err = err
		return
	}
	s.compiled, s.err = c.Compile(url)
}
