package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies-dou.json")
	data := `[
		{"name": "csrftoken", "value": "abc", "domain": ".dou.ua", "path": "/", "expires": 1893456000, "secure": true, "sameSite": "Lax"},
		{"name": "sessionid", "value": "xyz", "domain": "jobs.dou.ua", "path": "/", "httpOnly": true}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cookies, err := LoadCookies(path)

	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "csrftoken", cookies[0].Name)
	assert.Equal(t, ".dou.ua", *cookies[0].Domain)
	assert.Equal(t, 1893456000.0, *cookies[0].Expires)
	assert.True(t, *cookies[0].Secure)
	assert.Equal(t, playwright.SameSiteAttributeLax, cookies[0].SameSite)
	assert.Nil(t, cookies[0].HttpOnly)
	assert.True(t, *cookies[1].HttpOnly)
	assert.Nil(t, cookies[1].Expires)
	assert.Nil(t, cookies[1].SameSite)
}

func TestLoadCookies_MissingFile(t *testing.T) {
	cookies, err := LoadCookies(filepath.Join(t.TempDir(), "nope.json"))

	assert.NoError(t, err)
	assert.Nil(t, cookies)
}

func TestLoadCookies_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadCookies(path)

	assert.Error(t, err)
}

func TestNewScreenshotDebugger_Disabled(t *testing.T) {
	var debugger *ScreenshotDebugger = NewScreenshotDebugger("")

	assert.Nil(t, debugger)
	assert.NoError(t, debugger.CaptureAndLog(nil, "x", "disabled"))
}
