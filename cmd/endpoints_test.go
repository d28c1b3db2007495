package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/course-registration/coursereg-web/api/services"
	"github.com/course-registration/coursereg-web/internal/appconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintEndpoints(t *testing.T) {
	endpoints, err := services.NewEndpoints("http://localhost:8080/")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printEndpoints(&buf, endpoints))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, []string{"COURSES", "http://localhost:8080/courses"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"DELETE_STUDENT", "http://localhost:8080/students/delete"}, strings.Fields(lines[7]))
}

func TestEndpointsCommand_FlagOverridesEnv(t *testing.T) {
	t.Setenv("COURSEREG_API_BASE_URL", "http://from-env:9000")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"endpoints", "--api-base-url", "https://api.example.com", "--env-file", "does-not-exist.env"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		apiBaseURL = ""
		envFile = ".env"
		rootCmd.PersistentFlags().Lookup("api-base-url").Changed = false
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "https://api.example.com/courses/enrolled")
	assert.NotContains(t, buf.String(), "from-env")
}

func TestEndpointsCommand_EmptyFlagIsAnError(t *testing.T) {
	t.Setenv("COURSEREG_API_BASE_URL", "http://from-env:9000")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"endpoints", "--api-base-url", "", "--env-file", "does-not-exist.env"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		apiBaseURL = ""
		envFile = ".env"
		rootCmd.PersistentFlags().Lookup("api-base-url").Changed = false
	})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, appconfig.ErrMissingBaseURL)
	assert.NotContains(t, buf.String(), "from-env")
}
