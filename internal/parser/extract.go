package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	apperrors "careerpath/internal/errors"
)

// ExtractText extracts plain text from resume document bytes. The format is
// chosen by filename extension; PDF and DOCX are supported.
func ExtractText(data []byte, filename string) (string, error) {
	filenameLower := strings.ToLower(filename)

	var text string
	var err error
	switch {
	case strings.HasSuffix(filenameLower, ".pdf"):
		text, err = extractPDF(data)
	case strings.HasSuffix(filenameLower, ".docx"):
		text, err = extractDOCX(data)
	case strings.HasSuffix(filenameLower, ".doc"):
		return "", apperrors.NewParseError(apperrors.ErrCodeUnsupportedFormat,
			"DOC format not supported, use DOCX or PDF", nil).
			WithContext("filename", filename)
	default:
		return "", apperrors.NewParseError(apperrors.ErrCodeUnsupportedFormat,
			"unsupported file format, upload PDF or DOCX", nil).
			WithContext("filename", filename)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewParseError(apperrors.ErrCodeEmptyDocument,
			"could not extract text, the file may be corrupted or empty", nil).
			WithContext("filename", filename)
	}

	return strings.TrimSpace(text), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewParseError(apperrors.ErrCodeInvalidFormat,
			"failed to read PDF", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperrors.NewParseError(apperrors.ErrCodeInvalidFormat,
			"failed to read DOCX", err)
	}
	defer doc.Close()

	// GetContent returns the raw document.xml; flatten it to plain text.
	return flattenDocxXML(doc.Editable().GetContent()), nil
}

// flattenDocxXML strips WordprocessingML markup, inserting newlines at
// paragraph and line break boundaries.
func flattenDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
