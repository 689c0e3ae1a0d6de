package constants_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/agents-course/taskfetch/internal/constants"
	"github.com/stretchr/testify/assert"
)

func TestGetDefaultConfigPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		baseDir func() (string, error)

		want string
	}{
		"Base dir is joined with the app folder": {
			baseDir: func() (string, error) { return "abc/def", nil },
			want:    filepath.Join("abc/def", constants.DefaultAppFolder),
		},
		"Base dir error returns empty path": {
			baseDir: func() (string, error) { return "", fmt.Errorf("error") },
		},
		"Base dir error with a value returns empty path": {
			baseDir: func() (string, error) { return "abc", fmt.Errorf("error") },
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := constants.GetDefaultConfigPath(constants.WithBaseDir(tc.baseDir))
			assert.Equal(t, tc.want, got, "GetDefaultConfigPath should return the expected path")
		})
	}
}
