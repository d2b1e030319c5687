package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitCmd_CreatesFolders(t *testing.T) {
	cleanup := setupConfigTest(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"init"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)

	cfg := configStore.Config()
	for _, dir := range []string{cfg.Paths.SourceDir, cfg.Paths.ArchiveDir} {
		info, statErr := os.Stat(dir)
		assert.NoError(t, statErr)
		if statErr == nil {
			assert.True(t, info.IsDir())
		}
	}

	_, statErr := os.Stat(configStore.Path())
	assert.NoError(t, statErr)
	assert.Contains(t, buf.String(), "Ready.")
}
