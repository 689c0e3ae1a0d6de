// Package testutils provides helper functions for testing
package testutils

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

// CmdTestCase is a test case for testing cobra CMD flags.
type CmdTestCase struct {
	Name           string
	Short          string
	DefValue       string
	FilenameExts   []string
	PersistentFlag bool
	UsageContains  string
	BaseCmd        *cobra.Command
}

// FlagTestHelper is a helper function to test cobra CMD flags.
func FlagTestHelper(t *testing.T, testCase CmdTestCase) {
	t.Helper()
	var flag *pflag.Flag

	if testCase.PersistentFlag {
		flag = testCase.BaseCmd.PersistentFlags().Lookup(testCase.Name)
	} else {
		flag = testCase.BaseCmd.Flags().Lookup(testCase.Name)
	}
	if !assert.NotNil(t, flag, "flag %q should be installed", testCase.Name) {
		return
	}
	assert.Equal(t, testCase.Short, flag.Shorthand)
	assert.Equal(t, testCase.DefValue, flag.DefValue)
	if testCase.UsageContains != "" {
		assert.Contains(t, flag.Usage, testCase.UsageContains)
	}

	if testCase.FilenameExts != nil {
		assert.Equal(t, testCase.FilenameExts, flag.Annotations[cobra.BashCompFilenameExt])
	} else {
		assert.Nil(t, flag.Annotations[cobra.BashCompFilenameExt])
	}
}
