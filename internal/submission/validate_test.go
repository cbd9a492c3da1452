package submission

import (
	"strings"
	"testing"

	"journalhub/pkg/config"
	"journalhub/pkg/models"
)

const (
	mimeDoc  = "application/msword"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func stubSniffer(mime string) Sniffer {
	return func([]byte) string { return mime }
}

func newTestValidator(mime string) *Validator {
	v := NewValidator(config.Default().Limits)
	v.Sniff = stubSniffer(mime)
	return v
}

func validAuthor() models.Author {
	return models.Author{
		Title:       "Dr.",
		Name:        "Ada",
		Surname:     "Lovelace",
		Authorship:  "Corresponding Author",
		Email:       "ada@example.com",
		Address:     "1 Analytical Engine Way",
		Affiliation: "Royal Society",
	}
}

func validPayload() *Payload {
	return &Payload{
		Authors:         []models.Author{validAuthor()},
		ArticleType:     "Original article",
		ManuscriptTitle: "On Computable Numbers",
		Abstract:        "We describe a class of machines able to compute any computable sequence.",
		Keywords:        "algorithms;computation;logic;history",
		File: &models.UploadedFile{
			Filename: "manuscript.docx",
			Size:     2 * 1024 * 1024,
			Content:  []byte("PK\x03\x04 pretend docx bytes"),
		},
	}
}

func messages(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestValidPayloadPasses(t *testing.T) {
	v := newTestValidator(mimeDocx)
	sub, errs := v.Validate(validPayload())
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", messages(errs))
	}
	if sub == nil {
		t.Fatal("expected a validated submission")
	}
	if got := sub.Keywords; len(got) != 4 || got[0] != "algorithms" {
		t.Fatalf("unexpected keywords: %v", got)
	}
	if sub.File.SniffedType != mimeDocx {
		t.Fatalf("sniffed type not recorded: %q", sub.File.SniffedType)
	}
}

func TestNoAuthors(t *testing.T) {
	p := validPayload()
	p.Authors = nil

	v := newTestValidator(mimeDocx)
	sub, errs := v.Validate(p)
	if sub != nil {
		t.Fatal("expected rejection")
	}
	if msgs := messages(errs); len(msgs) != 1 || msgs[0] != "At least one author is required" {
		t.Fatalf("unexpected errors: %v", msgs)
	}
}

func TestAuthorErrorsFireIndependently(t *testing.T) {
	p := validPayload()
	bad := validAuthor()
	bad.Address = ""
	bad.Email = "not-an-email"
	p.Authors = append(p.Authors, bad)

	v := newTestValidator(mimeDocx)
	_, errs := v.Validate(p)
	msgs := messages(errs)
	want := []string{
		"All fields are required for author 2",
		"Invalid email format for author 2",
	}
	if len(msgs) != 2 || msgs[0] != want[0] || msgs[1] != want[1] {
		t.Fatalf("got %v, want %v", msgs, want)
	}
}

func TestEmailGrammar(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"ada@example.com", true},
		{"a.b+tag@sub.example.org", true},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"Ada <ada@example.com>", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		if got := validEmail(tc.email); got != tc.ok {
			t.Errorf("validEmail(%q) = %v, want %v", tc.email, got, tc.ok)
		}
	}
}

func TestAbstractWordBoundary(t *testing.T) {
	v := newTestValidator(mimeDocx)

	p := validPayload()
	p.Abstract = strings.TrimSpace(strings.Repeat("word ", 350))
	if _, errs := v.Validate(p); len(errs) > 0 {
		t.Fatalf("350 words should pass: %v", messages(errs))
	}

	p.Abstract = strings.TrimSpace(strings.Repeat("word ", 351))
	_, errs := v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "Abstract exceeds 350 words" {
		t.Fatalf("351 words should fail: %v", messages(errs))
	}
}

func TestAbstractWordCountSplitsOnWhitespaceRuns(t *testing.T) {
	if got := wordCount("one\ttwo   three\n\nfour"); got != 4 {
		t.Fatalf("wordCount = %d, want 4", got)
	}
}

func TestKeywordsTrimmedAndEmptyDropped(t *testing.T) {
	v := newTestValidator(mimeDocx)
	p := validPayload()
	p.Keywords = "a; ;b;c;d"

	sub, errs := v.Validate(p)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", messages(errs))
	}
	want := []string{"a", "b", "c", "d"}
	if len(sub.Keywords) != len(want) {
		t.Fatalf("got %v, want %v", sub.Keywords, want)
	}
	for i := range want {
		if sub.Keywords[i] != want[i] {
			t.Fatalf("got %v, want %v", sub.Keywords, want)
		}
	}
}

func TestKeywordCountBounds(t *testing.T) {
	v := newTestValidator(mimeDocx)

	for _, kw := range []string{"algorithms;computation", "a;b;c;d;e;f;g"} {
		p := validPayload()
		p.Keywords = kw
		_, errs := v.Validate(p)
		if len(errs) != 1 || errs[0].Message != "Please provide 4-6 keywords" {
			t.Fatalf("keywords %q: got %v", kw, messages(errs))
		}
	}
}

func TestFileSizeBoundary(t *testing.T) {
	v := newTestValidator(mimeDocx)

	p := validPayload()
	p.File.Size = 17 * 1024 * 1024
	if _, errs := v.Validate(p); len(errs) > 0 {
		t.Fatalf("exactly 17 MiB should pass: %v", messages(errs))
	}

	p.File.Size = 17*1024*1024 + 1
	_, errs := v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "File size exceeds 17 MB limit" {
		t.Fatalf("one byte over should fail: %v", messages(errs))
	}
}

func TestExtensionCaseInsensitive(t *testing.T) {
	v := newTestValidator(mimeDocx)
	p := validPayload()
	p.File.Filename = "MANUSCRIPT.DOCX"
	if _, errs := v.Validate(p); len(errs) > 0 {
		t.Fatalf("uppercase extension should pass: %v", messages(errs))
	}
}

func TestDisallowedExtension(t *testing.T) {
	v := newTestValidator(mimeDocx)
	p := validPayload()
	p.File.Filename = "manuscript.pdf"
	_, errs := v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "Only .doc and .docx files are allowed" {
		t.Fatalf("unexpected errors: %v", messages(errs))
	}
}

func TestSniffedTypeMustMatchExtension(t *testing.T) {
	// a .docx whose content sniffs as legacy msword is rejected even
	// though both the extension and the type are individually allowed
	v := newTestValidator(mimeDoc)
	p := validPayload() // .docx filename
	_, errs := v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "Invalid file type" {
		t.Fatalf("mismatched sniff should fail: %v", messages(errs))
	}
}

func TestSniffedTypeNotTrusted(t *testing.T) {
	v := newTestValidator("application/pdf")
	p := validPayload()
	p.File.DeclaredType = mimeDocx // client lies, content is PDF
	_, errs := v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "Invalid file type" {
		t.Fatalf("sniffed type must win over declared: %v", messages(errs))
	}
}

func TestMissingFileVersusBrokenUpload(t *testing.T) {
	v := newTestValidator(mimeDocx)

	p := validPayload()
	p.File = nil
	_, errs := v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "Manuscript file is required" {
		t.Fatalf("missing file: got %v", messages(errs))
	}

	p.FileBroken = true
	_, errs = v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "File upload error occurred" {
		t.Fatalf("broken upload: got %v", messages(errs))
	}
}

func TestAllErrorsCollectedInOrder(t *testing.T) {
	v := newTestValidator(mimeDocx)
	p := &Payload{} // everything missing

	sub, errs := v.Validate(p)
	if sub != nil {
		t.Fatal("expected rejection")
	}
	want := "At least one author is required; " +
		"Article type is required; " +
		"Manuscript title is required; " +
		"Abstract is required; " +
		"Keywords are required; " +
		"Manuscript file is required"
	if got := JoinMessages(errs); got != want {
		t.Fatalf("joined message\n got: %s\nwant: %s", got, want)
	}
}

func TestInjectedLimits(t *testing.T) {
	limits := config.Default().Limits
	limits.MaxAbstractWords = 10
	v := &Validator{Limits: limits, Sniff: stubSniffer(mimeDocx)}

	p := validPayload()
	p.Abstract = strings.TrimSpace(strings.Repeat("word ", 11))
	_, errs := v.Validate(p)
	if len(errs) != 1 || errs[0].Message != "Abstract exceeds 10 words" {
		t.Fatalf("custom limit not applied: %v", messages(errs))
	}
}
