package models

import "strings"

// Author is one entry of the submission's author list. All seven fields
// are mandatory; the first author in form order is the correspondence
// target for the confirmation email.
type Author struct {
	Title       string `json:"title"`      // "Dr.", "Prof.", ...
	Name        string `json:"name"`       // given name
	Surname     string `json:"surname"`    // family name
	Authorship  string `json:"authorship"` // "First Author", "Co-Author", "Corresponding Author"
	Email       string `json:"email"`
	Address     string `json:"address"`
	Affiliation string `json:"affiliation"`
}

// FullName renders the author the way the emails address them,
// e.g. "Dr. Ada Lovelace".
func (a Author) FullName() string {
	return strings.TrimSpace(a.Title + " " + a.Name + " " + a.Surname)
}

// SubmissionMetadata holds the non-author form fields of a submission.
type SubmissionMetadata struct {
	ArticleType     string `json:"article_type"`
	ManuscriptTitle string `json:"manuscript_title"`
	Abstract        string `json:"abstract"`
	Keywords        string `json:"keywords"` // raw semicolon-delimited string as typed
}

// UploadedFile is the manuscript document. It lives in memory for one
// request only and is never written to disk.
type UploadedFile struct {
	Filename     string
	Size         int64
	Content      []byte
	DeclaredType string // client-declared Content-Type, informational only
	SniffedType  string // detected from content, what validation trusts
}

// ValidatedSubmission is the normalized output of a successful validation
// pass. Authors keep their form order; Keywords holds the trimmed tokens.
type ValidatedSubmission struct {
	Authors  []Author
	Metadata SubmissionMetadata
	Keywords []string
	File     UploadedFile
}

// CorrespondingAuthor returns the designated correspondence target:
// the first author in submission order.
func (s *ValidatedSubmission) CorrespondingAuthor() Author {
	return s.Authors[0]
}
