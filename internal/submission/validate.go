package submission

import (
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"journalhub/pkg/config"
	"journalhub/pkg/models"
)

// ErrorKind tags what class of rule a field violated.
type ErrorKind string

const (
	KindMissing ErrorKind = "missing"
	KindFormat  ErrorKind = "format"
	KindLimit   ErrorKind = "limit"
	KindUpload  ErrorKind = "upload"
)

// FieldError is one collected validation failure. Message is the exact
// user-facing text; Field and Kind exist for structured handling.
type FieldError struct {
	Field   string
	Kind    ErrorKind
	Message string
}

func (e FieldError) Error() string { return e.Message }

// JoinMessages renders collected errors for the response body.
func JoinMessages(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Message
	}
	return strings.Join(parts, "; ")
}

// Sniffer determines a media type from file content. The client-declared
// type is never trusted.
type Sniffer func(data []byte) string

// DetectContentType is the default Sniffer, backed by magic-byte
// detection.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// Validator checks one payload against the configured limits. All rules
// run; every violation is collected so the submitter sees the complete
// list at once.
type Validator struct {
	Limits config.LimitsConfig
	Sniff  Sniffer
}

func NewValidator(limits config.LimitsConfig) *Validator {
	return &Validator{Limits: limits, Sniff: DetectContentType}
}

// Validate returns either a normalized submission or a non-empty ordered
// error list, never both. Order: authors by index, then article type,
// title, abstract, keywords, file.
func (v *Validator) Validate(p *Payload) (*models.ValidatedSubmission, []FieldError) {
	var errs []FieldError
	add := func(field string, kind ErrorKind, msg string) {
		errs = append(errs, FieldError{Field: field, Kind: kind, Message: msg})
	}

	if len(p.Authors) == 0 {
		add("authors", KindMissing, "At least one author is required")
	} else {
		for i, a := range p.Authors {
			num := i + 1
			if a.Title == "" || a.Name == "" || a.Surname == "" || a.Authorship == "" ||
				a.Email == "" || a.Address == "" || a.Affiliation == "" {
				add("authors", KindMissing, fmt.Sprintf("All fields are required for author %d", num))
			}
			if a.Email != "" && !validEmail(a.Email) {
				add("authors", KindFormat, fmt.Sprintf("Invalid email format for author %d", num))
			}
		}
	}

	if p.ArticleType == "" {
		add("article_type", KindMissing, "Article type is required")
	}
	if p.ManuscriptTitle == "" {
		add("manuscript_title", KindMissing, "Manuscript title is required")
	}

	if p.Abstract == "" {
		add("abstract", KindMissing, "Abstract is required")
	} else if wordCount(p.Abstract) > v.Limits.MaxAbstractWords {
		add("abstract", KindLimit, fmt.Sprintf("Abstract exceeds %d words", v.Limits.MaxAbstractWords))
	}

	keywords := splitKeywords(p.Keywords)
	if p.Keywords == "" {
		add("keywords", KindMissing, "Keywords are required")
	} else if len(keywords) < v.Limits.MinKeywords || len(keywords) > v.Limits.MaxKeywords {
		add("keywords", KindLimit, fmt.Sprintf("Please provide %d-%d keywords", v.Limits.MinKeywords, v.Limits.MaxKeywords))
	}

	switch {
	case p.FileBroken:
		add("manuscript_file", KindUpload, "File upload error occurred")
	case p.File == nil:
		add("manuscript_file", KindMissing, "Manuscript file is required")
	default:
		f := p.File

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Filename), "."))
		expectedMIME, extAllowed := v.Limits.MIMEForExtension(ext)
		if !extAllowed {
			add("manuscript_file", KindFormat, "Only .doc and .docx files are allowed")
		}

		if f.Size > v.Limits.MaxFileBytes {
			add("manuscript_file", KindLimit, fmt.Sprintf("File size exceeds %d MB limit", v.Limits.MaxFileBytes/(1024*1024)))
		}

		// the sniffed type is checked independently of the extension,
		// and when the extension is accepted the content must sniff as
		// that extension's type; a renamed file fails either way
		f.SniffedType = v.Sniff(f.Content)
		if !v.Limits.AllowsMIME(f.SniffedType) || (extAllowed && f.SniffedType != expectedMIME) {
			add("manuscript_file", KindFormat, "Invalid file type")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &models.ValidatedSubmission{
		Authors: p.Authors,
		Metadata: models.SubmissionMetadata{
			ArticleType:     p.ArticleType,
			ManuscriptTitle: p.ManuscriptTitle,
			Abstract:        p.Abstract,
			Keywords:        p.Keywords,
		},
		Keywords: keywords,
		File:     *p.File,
	}, nil
}

// wordCount splits on runs of whitespace and counts non-empty tokens.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// splitKeywords tokenizes the semicolon-delimited keyword string,
// trimming each token and dropping empties.
func splitKeywords(s string) []string {
	var keywords []string
	for _, token := range strings.Split(s, ";") {
		if t := strings.TrimSpace(token); t != "" {
			keywords = append(keywords, t)
		}
	}
	return keywords
}

// validEmail checks syntactic well-formedness of a bare address. Display
// names and domains without a dot are rejected.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(addr.Address, "@")
	return at > 0 && strings.Contains(addr.Address[at+1:], ".")
}
