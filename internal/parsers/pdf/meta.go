package pdf

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// pdfDate matches "D:YYYYMMDDHHmmSSOHH'mm'" where everything after the
// year is optional.
var pdfDate = regexp.MustCompile(`^D?:?(\d{4})(\d{2})?(\d{2})?(\d{2})?(\d{2})?(\d{2})?([Zz+\-])?(\d{2})?'?(\d{2})?'?$`)

// metaFromInfo builds metadata from the info dictionary. get returns ""
// for absent keys.
func metaFromInfo(get func(string) string) domain.DocumentMeta {
	field := func(key string) *string {
		return domain.StringPtr(strings.TrimSpace(get(key)))
	}
	return domain.DocumentMeta{
		Title:            strings.TrimSpace(get("Title")),
		Subject:          field("Subject"),
		Keywords:         field("Keywords"),
		Author:           field("Author"),
		Creator:          field("Creator"),
		Producer:         field("Producer"),
		CreationDate:     parseDate(get("CreationDate")),
		ModificationDate: parseDate(get("ModDate")),
	}
}

// parseDate converts a PDF date string, or RFC 3339 as written by some
// producers, to milliseconds since the epoch. Unparseable values give nil.
func parseDate(value string) *int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		ms := t.UnixMilli()
		return &ms
	}

	m := pdfDate.FindStringSubmatch(value)
	if m == nil {
		return nil
	}
	num := func(s string, def int) int {
		if s == "" {
			return def
		}
		n, _ := strconv.Atoi(s)
		return n
	}

	loc := time.UTC
	if sign := m[7]; sign == "+" || sign == "-" {
		offset := num(m[8], 0)*3600 + num(m[9], 0)*60
		if sign == "-" {
			offset = -offset
		}
		loc = time.FixedZone("", offset)
	}

	t := time.Date(num(m[1], 0), time.Month(num(m[2], 1)), num(m[3], 1),
		num(m[4], 0), num(m[5], 0), num(m[6], 0), 0, loc)
	ms := t.UnixMilli()
	return &ms
}
