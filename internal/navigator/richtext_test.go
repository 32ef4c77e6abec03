package navigator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertHTMLToRTF_Formatting(t *testing.T) {
	rtf := ConvertHTMLToRTF("<h1>Titel</h1><p>Hallo <b>Welt</b></p>")

	require.True(t, strings.HasPrefix(rtf, `{\rtf1\ansi`))
	require.True(t, strings.HasSuffix(rtf, "}"))
	require.Contains(t, rtf, `\fs48\b Titel\b0\fs24\par`)
	require.Contains(t, rtf, `\b Welt\b0`)
	require.Contains(t, rtf, `\par`)
	require.NotContains(t, rtf, "<")
}

func TestConvertHTMLToRTF_ListsAndBreaks(t *testing.T) {
	rtf := ConvertHTMLToRTF("<ul><li>Eins</li><li>Zwei</li></ul><p>Erste Zeile<br>Zweite Zeile</p>")

	require.Contains(t, rtf, `\bullet  Eins\par`)
	require.Contains(t, rtf, `\bullet  Zwei\par`)
	require.Contains(t, rtf, `Erste Zeile\line Zweite Zeile`)
}

func TestConvertHTMLToRTF_InlineStyles(t *testing.T) {
	rtf := ConvertHTMLToRTF("<p><em>kursiv</em> und <u>unterstrichen</u> und <strong>fett</strong></p>")

	require.Contains(t, rtf, `\i kursiv\i0`)
	require.Contains(t, rtf, `\ul unterstrichen\ulnone`)
	require.Contains(t, rtf, `\b fett\b0`)
}

func TestConvertHTMLToRTF_EscapesUmlautsAndEntities(t *testing.T) {
	rtf := ConvertHTMLToRTF("<p>M&uuml;ller &amp; Sohn: Änderung</p>")

	require.Contains(t, rtf, `M\u252?ller & Sohn`)
	require.Contains(t, rtf, `\u196?nderung`)
}

func TestConvertHTMLToRTF_StripsDisallowedMarkup(t *testing.T) {
	rtf := ConvertHTMLToRTF(`<p>sicher</p><script>alert("x")</script><div onclick="x">Text</div>`)

	require.Contains(t, rtf, `sicher\par`)
	require.NotContains(t, rtf, "alert")
	require.NotContains(t, rtf, "onclick")
	require.Contains(t, rtf, "Text")
}

func TestSanitizeHTML_KeepsSupportedSubset(t *testing.T) {
	out := SanitizeHTML(`<h2>Abschnitt</h2><p style="color:red">Text</p><a href="https://x">Link</a>`)

	require.Contains(t, out, "<h2>Abschnitt</h2>")
	require.Contains(t, out, "<p>Text</p>")
	require.NotContains(t, out, "<a")
	require.NotContains(t, out, "style")
}

func TestRTFFileName(t *testing.T) {
	require.Equal(t, "bericht.rtf", rtfFileName("bericht.pdoc"))
	require.Equal(t, "bericht.rtf", rtfFileName("bericht"))
	require.Equal(t, "archiv.2024.rtf", rtfFileName("archiv.2024.pdoc"))
	require.Equal(t, ".hidden.rtf", rtfFileName(".hidden"))
}
