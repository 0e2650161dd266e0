package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gerunddev/todotree/internal/todo"
)

// JSON renders the forest as indented JSON.
func JSON(forest []todo.Node) (string, error) {
	if forest == nil {
		forest = []todo.Node{}
	}
	data, err := json.MarshalIndent(forest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal todos: %w", err)
	}
	return string(data) + "\n", nil
}

// YAML renders the forest as YAML.
func YAML(forest []todo.Node) (string, error) {
	if forest == nil {
		forest = []todo.Node{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(forest); err != nil {
		return "", fmt.Errorf("failed to marshal todos: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to marshal todos: %w", err)
	}
	return buf.String(), nil
}
