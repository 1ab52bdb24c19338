package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProperty struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type testNode struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Properties []testProperty `json:"properties"`
}

type testGraph struct {
	Nodes []testNode `json:"nodes"`
}

func TestUnmarshalFlexible_GraphVariants(t *testing.T) {
	want := testGraph{Nodes: []testNode{{ID: "John Doe", Type: "Person", Properties: []testProperty{}}}}

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "valid json object",
			input: `{"nodes":[{"id":"John Doe","type":"Person","properties":[]}]}`,
		},
		{
			name:  "unquoted keys and single quotes",
			input: `{nodes: [{id: 'John Doe', type: 'Person', properties: []}]}`,
		},
		{
			name:  "trailing comma",
			input: `{"nodes":[{"id":"John Doe","type":"Person","properties":[],}],}`,
		},
		{
			name:  "missing end brackets",
			input: `{"nodes":[{"id":"John Doe","type":"Person","properties":[]`,
		},
		{
			name:  "fenced",
			input: "```json\n{\"nodes\":[{\"id\":\"John Doe\",\"type\":\"Person\",\"properties\":[]}]}\n```",
		},
		{
			name:  "stringified",
			input: `"{\"nodes\":[{\"id\":\"John Doe\",\"type\":\"Person\",\"properties\":[]}]}"`,
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n\"nodes\":[{\"id\":\"John Doe\",\"type\":\"Person\",\"properties\":[]}]\n}\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got testGraph
			require.NoError(t, UnmarshalFlexible(tc.input, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	var got testGraph
	err := UnmarshalFlexible("hello", &got)
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "{}", want: "{}"},
		{in: "```json\n{}\n```", want: "{}"},
		{in: "```\n[1]\n```", want: "[1]"},
		{in: "  ```json\n{\"a\":1}\n```  ", want: `{"a":1}`},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, stripCodeFence(tc.in))
	}
}

func TestGenerateSchema_StrictObject(t *testing.T) {
	raw, err := json.Marshal(GenerateSchema(&testGraph{}))
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.ElementsMatch(t, []any{"nodes"}, schema["required"])
}
