package fileutils_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/agents-course/taskfetch/internal/fileutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string

		want    []map[string]any
		wantErr bool
	}{
		"Empty list": {
			input: `[]`,
			want:  []map[string]any{},
		},
		"Single object": {
			input: `[{"task_id": "a", "level": 1}]`,
			want:  []map[string]any{{"task_id": "a", "level": json.Number("1")}},
		},
		"Large numbers keep their precision": {
			input: `[{"n": 12345678901234567890}]`,
			want:  []map[string]any{{"n": json.Number("12345678901234567890")}},
		},

		// Error cases
		"Empty input": {
			input:   ``,
			wantErr: true,
		},
		"Junk data": {
			input:   `some junk data`,
			wantErr: true,
		},
		"Object instead of list": {
			input:   `{"task_id": "a"}`,
			wantErr: true,
		},
		"Trailing data": {
			input:   `[] junk`,
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got []map[string]any
			err := fileutils.ParseJSON(strings.NewReader(tc.input), &got)
			if tc.wantErr {
				require.Error(t, err, "expected error but got none")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, "parsed data should match")
		})
	}
}

func TestIndentJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string

		want    string
		wantErr bool
	}{
		"Keeps key order and number text": {
			input: `[{"z":1.50,"a":"x"}]`,
			want:  "[\n    {\n        \"z\": 1.50,\n        \"a\": \"x\"\n    }\n]",
		},
		"Empty list": {
			input: `[]`,
			want:  `[]`,
		},

		"Invalid JSON": {input: `[`, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutils.IndentJSON([]byte(tc.input), "    ")
			if tc.wantErr {
				require.Error(t, err, "expected error but got none")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got), "indented data should match")
		})
	}
}
