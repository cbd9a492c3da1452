// Package submission implements the guest manuscript intake pipeline:
// multipart payload parsing, validation, and the HTTP handler that
// drives composition and dispatch of the notification emails.
package submission

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"journalhub/pkg/models"
)

// parseMemoryLimit caps how much of the multipart body is held in memory
// by the form parser; larger file parts spill to request-scoped temp
// files that Go removes when the request ends.
const parseMemoryLimit = 32 << 20

// Payload is the raw, type-checked form data before validation. A
// missing file and a broken upload are distinct states: the validator
// reports them with different messages.
type Payload struct {
	Authors         []models.Author
	ArticleType     string
	ManuscriptTitle string
	Abstract        string
	Keywords        string
	File            *models.UploadedFile // nil when absent or broken
	FileBroken      bool                 // transport reported a failed upload
}

var authorFieldRe = regexp.MustCompile(`^authors\[(\d+)\]\[(title|name|surname|authorship|email|address|affiliation)\]$`)

// ParsePayload decodes the multipart form into a Payload. It never
// fails: a malformed or empty body simply yields an empty payload, and
// the validator then reports every missing field at once.
func ParsePayload(r *http.Request) *Payload {
	_ = r.ParseMultipartForm(parseMemoryLimit)

	p := &Payload{
		ArticleType:     strings.TrimSpace(r.FormValue("article_type")),
		ManuscriptTitle: strings.TrimSpace(r.FormValue("manuscript_title")),
		Abstract:        strings.TrimSpace(r.FormValue("abstract")),
		Keywords:        strings.TrimSpace(r.FormValue("keywords")),
	}
	p.Authors = parseAuthors(r.PostForm)
	p.File, p.FileBroken = parseFile(r)
	return p
}

// parseAuthors collects authors[i][field] keys into ordered records.
// Indices may be sparse (the form renumbers on author removal); order
// follows the numeric index.
func parseAuthors(form map[string][]string) []models.Author {
	byIndex := make(map[int]*models.Author)

	for key, values := range form {
		m := authorFieldRe.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}

		idx := 0
		for _, ch := range m[1] {
			idx = idx*10 + int(ch-'0')
		}

		a := byIndex[idx]
		if a == nil {
			a = &models.Author{}
			byIndex[idx] = a
		}

		value := strings.TrimSpace(values[0])
		switch m[2] {
		case "title":
			a.Title = value
		case "name":
			a.Name = value
		case "surname":
			a.Surname = value
		case "authorship":
			a.Authorship = value
		case "email":
			a.Email = value
		case "address":
			a.Address = value
		case "affiliation":
			a.Affiliation = value
		}
	}

	indices := make([]int, 0, len(byIndex))
	for idx := range byIndex {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	authors := make([]models.Author, 0, len(indices))
	for _, idx := range indices {
		authors = append(authors, *byIndex[idx])
	}
	return authors
}

// parseFile reads the manuscript part fully into memory. The bytes live
// only for this request.
func parseFile(r *http.Request) (*models.UploadedFile, bool) {
	file, header, err := r.FormFile("manuscript_file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, false
	}
	if err != nil {
		return nil, true
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, true
	}

	return &models.UploadedFile{
		Filename:     header.Filename,
		Size:         header.Size,
		Content:      content,
		DeclaredType: header.Header.Get("Content-Type"),
	}, false
}
