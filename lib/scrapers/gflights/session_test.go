package gflights

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const landingPage = `<!DOCTYPE html>
<html><head><title>Flights</title>
<script nonce="x">window.WIZ_global_data = {"FdrFJe":"-6262658003877241321","cfb2h":"boq_travel-frontend-ui_20260828.01_p1","eptZe":"/_/TravelFrontendUi/"};</script>
</head><body><c-wiz></c-wiz></body></html>`

func TestExtractSessionTokens(t *testing.T) {
	s, err := ExtractSessionTokens(landingPage)
	require.NoError(t, err)
	require.Equal(t, "-6262658003877241321", s.Sid)
	require.Equal(t, "boq_travel-frontend-ui_20260828.01_p1", s.Bl)
}

// markers split across two script tags
func TestExtractSessionTokensSplitScripts(t *testing.T) {
	html := `<html><head>
<script>var a = {"FdrFJe":"123456789"};</script>
<script>var b = {"cfb2h":"boq_travel-frontend-ui_20260101.00_p0"};</script>
</head><body></body></html>`

	s, err := ExtractSessionTokens(html)
	require.NoError(t, err)
	require.Equal(t, "123456789", s.Sid)
	require.Equal(t, "boq_travel-frontend-ui_20260101.00_p0", s.Bl)
}

// markers outside any script tag still resolve via the raw-text scan
func TestExtractSessionTokensRawFallback(t *testing.T) {
	raw := `garbage {"FdrFJe":"-42"} more {"cfb2h":"bl_value"} garbage`

	s, err := ExtractSessionTokens(raw)
	require.NoError(t, err)
	require.Equal(t, "-42", s.Sid)
	require.Equal(t, "bl_value", s.Bl)
}

func TestExtractSessionTokensMissing(t *testing.T) {
	for name, html := range map[string]string{
		"empty":        "",
		"consent page": `<html><body>Before you continue to Google</body></html>`,
		"sid only":     `<script>{"FdrFJe":"99"}</script>`,
		"bl only":      `<script>{"cfb2h":"boq_x"}</script>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractSessionTokens(html)
			require.ErrorIs(t, err, ErrAuthExtraction)
		})
	}
}
