package storage

import (
	"bytes"
	"strings"

	"github.com/jhillyerd/enmime"

	"datanorm/internal"
	"datanorm/internal/datanorm"
)

// ImportResult reports what a mail import stored and what it ignored.
type ImportResult struct {
	Stored  []internal.AttachmentRow
	Ignored []string
}

// ImportFromMail lifts DATANORM files out of a raw RFC 5322 message.
// Suppliers commonly mail their catalog exports; only attachments with
// a recognized DATANORM file name are stored. The supplier comment
// defaults to the message subject so all files of one mailing land in
// the same supplier group.
func (d *DB) ImportFromMail(raw []byte, commentOverride string) (ImportResult, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return ImportResult{}, err
	}

	comment := strings.TrimSpace(commentOverride)
	if comment == "" {
		comment = strings.TrimSpace(env.GetHeader("Subject"))
	}

	res := ImportResult{}
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		if datanorm.DetectKind(filename) == datanorm.KindUnknown {
			res.Ignored = append(res.Ignored, filename)
			continue
		}
		row, err := d.AddAttachment(filename, comment, att.Content)
		if err != nil {
			return res, err
		}
		res.Stored = append(res.Stored, row)
	}

	return res, nil
}
