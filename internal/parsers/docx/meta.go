package docx

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/logger"
)

// defaultLanguage is reported when the package declares none.
const defaultLanguage = "en"

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title       string `xml:"title"`
	Subject     string `xml:"subject"`
	Creator     string `xml:"creator"`
	Keywords    string `xml:"keywords"`
	Description string `xml:"description"`
	Language    string `xml:"language"`
	Created     string `xml:"created"`
	Modified    string `xml:"modified"`
}

// extractMeta reads the core properties. The creator doubles as author
// and producer since the package has no separate fields for them.
func extractMeta(content []byte) domain.DocumentMeta {
	var core coreXML
	if content != nil {
		if err := xml.Unmarshal(content, &core); err != nil {
			logger.Warn("docx: unreadable core properties: %v", err)
		}
	}

	creator := domain.StringPtr(strings.TrimSpace(core.Creator))
	language := strings.TrimSpace(core.Language)
	if language == "" {
		language = defaultLanguage
	}

	return domain.DocumentMeta{
		Title:            strings.TrimSpace(core.Title),
		Language:         &language,
		Author:           creator,
		Creator:          creator,
		Producer:         creator,
		Subject:          domain.StringPtr(strings.TrimSpace(core.Subject)),
		Description:      domain.StringPtr(strings.TrimSpace(core.Description)),
		Keywords:         domain.StringPtr(strings.TrimSpace(core.Keywords)),
		CreationDate:     parseDate(core.Created),
		ModificationDate: parseDate(core.Modified),
	}
}

func parseDate(value string) *int64 {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
