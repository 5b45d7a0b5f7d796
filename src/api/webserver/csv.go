package webserver

import (
	"strconv"
	"strings"

	"github.com/okonari/okonari-board/src/api/types"
)

// UTF-8 BOM so Excel detects the encoding.
const csvBOM = "\uFEFF"

const csvExportLimit = 2000

var csvHeader = []string{"日時", "年齢", "性別", "場所", "行動", "解決策"}

// renderPostsCSV serializes posts (already ordered newest-first) into an
// Excel-compatible CSV document: BOM prefix, CRLF rows, places/actions
// flattened with " / ".
func renderPostsCSV(posts []types.Post) string {
	var b strings.Builder
	b.WriteString(csvBOM)
	writeCSVRow(&b, csvHeader)

	for _, p := range posts {
		b.WriteString("\r\n")
		writeCSVRow(&b, []string{
			p.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			strconv.Itoa(p.Age),
			p.Gender,
			strings.Join(p.Places, " / "),
			strings.Join(p.Actions, " / "),
			p.Solution,
		})
	}

	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvEscape(f))
	}
}

// A field is quoted, with internal quotes doubled, only when it contains a
// quote, comma, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, "\",\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
