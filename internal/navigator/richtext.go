package navigator

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// exportPolicy admits only the constrained HTML subset the rich-text export
// understands: headings, bold/italic/underline, paragraphs, line breaks and
// unordered lists. Everything else is stripped before conversion.
var exportPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("b", "strong", "i", "em", "u")
	p.AllowElements("p", "br", "ul", "li")
	return p
}()

var (
	reHeading   = regexp.MustCompile(`(?is)<h([1-6])>(.*?)</h[1-6]>`)
	reBold      = regexp.MustCompile(`(?is)<(?:b|strong)>(.*?)</(?:b|strong)>`)
	reItalic    = regexp.MustCompile(`(?is)<(?:i|em)>(.*?)</(?:i|em)>`)
	reUnderline = regexp.MustCompile(`(?is)<u>(.*?)</u>`)
	reParagraph = regexp.MustCompile(`(?is)<p>(.*?)</p>`)
	reBreak     = regexp.MustCompile(`(?i)<br\s*/?>`)
	reListItem  = regexp.MustCompile(`(?is)<li>(.*?)</li>`)
	reList      = regexp.MustCompile(`(?i)</?ul>`)
	reAnyTag    = regexp.MustCompile(`<[^>]*>`)
)

// heading font sizes in half-points per level, h4 and below share one size
var headingSizes = [...]int{48, 40, 36, 32, 32, 32}

// SanitizeHTML reduces html to the constrained subset supported by the
// rich-text export.
func SanitizeHTML(input string) string {
	return exportPolicy.Sanitize(input)
}

// ConvertHTMLToRTF converts the constrained HTML subset into legacy rich-text
// markup via regex substitution. Unknown tags are dropped; text content is
// preserved.
func ConvertHTMLToRTF(input string) string {
	body := SanitizeHTML(input)
	body = escapeRTF(body)

	body = reHeading.ReplaceAllStringFunc(body, func(match string) string {
		groups := reHeading.FindStringSubmatch(match)
		level, _ := strconv.Atoi(groups[1])
		size := headingSizes[level-1]
		return fmt.Sprintf(`\fs%d\b %s\b0\fs24\par `, size, groups[2])
	})
	body = reBold.ReplaceAllString(body, `\b $1\b0 `)
	body = reItalic.ReplaceAllString(body, `\i $1\i0 `)
	body = reUnderline.ReplaceAllString(body, `\ul $1\ulnone `)
	body = reListItem.ReplaceAllString(body, `\bullet  $1\par `)
	body = reList.ReplaceAllString(body, "")
	body = reParagraph.ReplaceAllString(body, `$1\par `)
	body = reBreak.ReplaceAllString(body, `\line `)
	body = reAnyTag.ReplaceAllString(body, "")

	body = html.UnescapeString(body)
	body = escapeNonASCII(body)

	return `{\rtf1\ansi\deff0{\fonttbl{\f0 Helvetica;}}\f0\fs24 ` + body + `}`
}

// escapeRTF protects characters that are control characters in RTF. Runs
// before any control words are inserted.
func escapeRTF(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `{`, `\{`)
	s = strings.ReplaceAll(s, `}`, `\}`)
	return s
}

// escapeNonASCII encodes characters outside 7-bit ASCII as \uN? escapes so
// umlauts in folder and document names survive the legacy format.
func escapeNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
			continue
		}
		fmt.Fprintf(&b, `\u%d?`, r)
	}
	return b.String()
}
