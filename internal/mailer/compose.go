package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"journalhub/pkg/config"
	"journalhub/pkg/models"
)

// adminSubjectPrefix is prepended to the manuscript title.
const adminSubjectPrefix = "New Guest Submission: "

// displayTime is the human-readable timestamp shown in both emails.
const displayTime = "January 2, 2006, 3:04 pm"

// Composer turns a validated submission into the two outbound messages.
// The clock is injectable so tests can pin the displayed timestamp.
type Composer struct {
	Journal config.JournalConfig
	Now     func() time.Time
}

func NewComposer(journal config.JournalConfig) *Composer {
	return &Composer{Journal: journal, Now: time.Now}
}

// AdminNotice builds the actionable editor alert: full submission
// details plus the manuscript attached. Replies go to the submitter.
func (c *Composer) AdminNotice(sub *models.ValidatedSubmission) (*Message, error) {
	authors := make([]adminAuthor, len(sub.Authors))
	for i, a := range sub.Authors {
		authors[i] = adminAuthor{Num: i + 1, Author: a}
	}

	data := adminNoticeData{
		SiteName:        c.Journal.SiteName,
		SiteURL:         c.Journal.SiteURL,
		ArticleType:     sub.Metadata.ArticleType,
		ManuscriptTitle: sub.Metadata.ManuscriptTitle,
		Keywords:        sub.Metadata.Keywords,
		Abstract:        nl2br(sub.Metadata.Abstract),
		Authors:         authors,
		Filename:        sub.File.Filename,
		Submitted:       c.Now().Format(displayTime),
	}

	var body bytes.Buffer
	if err := adminNoticeTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render admin notice: %w", err)
	}

	return &Message{
		From:     c.Journal.NoReplyEmail,
		FromName: c.Journal.SiteName,
		To:       c.Journal.AdminEmail,
		Cc:       c.Journal.CCEmails,
		Bcc:      c.Journal.BCCEmails,
		ReplyTo:  sub.CorrespondingAuthor().Email,
		Subject:  adminSubjectPrefix + sub.Metadata.ManuscriptTitle,
		HTMLBody: body.String(),
		Attachment: &Attachment{
			Filename:    sub.File.Filename,
			ContentType: sub.File.SniffedType,
			Content:     sub.File.Content,
		},
	}, nil
}

// AuthorReceipt builds the attachment-free confirmation for the first
// author. Replies go to the operator mailbox.
func (c *Composer) AuthorReceipt(sub *models.ValidatedSubmission) (*Message, error) {
	data := authorReceiptData{
		SiteName:        c.Journal.SiteName,
		SiteURL:         c.Journal.SiteURL,
		AdminEmail:      c.Journal.AdminEmail,
		AuthorName:      sub.CorrespondingAuthor().FullName(),
		ManuscriptTitle: sub.Metadata.ManuscriptTitle,
		ArticleType:     sub.Metadata.ArticleType,
		Submitted:       c.Now().Format(displayTime),
	}

	var body bytes.Buffer
	if err := authorReceiptTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render author receipt: %w", err)
	}

	return &Message{
		From:     c.Journal.NoReplyEmail,
		FromName: c.Journal.SiteName,
		To:       sub.CorrespondingAuthor().Email,
		ReplyTo:  c.Journal.AdminEmail,
		Subject:  "Submission Confirmation - " + c.Journal.SiteName,
		HTMLBody: body.String(),
	}, nil
}

// nl2br escapes user text and turns newlines into <br> so the abstract
// keeps its paragraph breaks inside the HTML body.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}

type adminAuthor struct {
	Num int
	models.Author
}

type adminNoticeData struct {
	SiteName        string
	SiteURL         string
	ArticleType     string
	ManuscriptTitle string
	Keywords        string
	Abstract        template.HTML
	Authors         []adminAuthor
	Filename        string
	Submitted       string
}

type authorReceiptData struct {
	SiteName        string
	SiteURL         string
	AdminEmail      string
	AuthorName      string
	ManuscriptTitle string
	ArticleType     string
	Submitted       string
}

var adminNoticeTmpl = template.Must(template.New("admin_notice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 800px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #2563eb 0%, #1d4ed8 100%); color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
.content { background: white; padding: 30px; border: 1px solid #e5e7eb; border-radius: 0 0 8px 8px; }
.section { margin-bottom: 25px; }
.section-title { font-size: 18px; font-weight: bold; color: #2563eb; margin-bottom: 10px; border-bottom: 2px solid #2563eb; padding-bottom: 5px; }
.info-row { margin: 8px 0; }
.label { font-weight: bold; color: #1f2937; }
.abstract-box { background: #f9fafb; padding: 15px; border-radius: 5px; border: 1px solid #e5e7eb; }
.author-card { background: #f9fafb; padding: 15px; margin-bottom: 15px; border-radius: 5px; border-left: 4px solid #2563eb; }
.footer { margin-top: 20px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1 style="margin: 0;">New Guest Submission</h1>
<p style="margin: 10px 0 0 0;">{{.SiteName}}</p>
</div>
<div class="content">
<p style="background: #fef3c7; padding: 15px; border-radius: 5px; border-left: 4px solid #f59e0b;">
<strong>Action Required:</strong> A new manuscript has been submitted via the guest submission form.
Please log in and manually enter this submission using the &quot;Submit on behalf of&quot; feature.
</p>
<div class="section">
<div class="section-title">Submission Details</div>
<div class="info-row"><span class="label">Article Type:</span> {{.ArticleType}}</div>
<div class="info-row"><span class="label">Manuscript Title:</span> {{.ManuscriptTitle}}</div>
<div class="info-row"><span class="label">Keywords:</span> {{.Keywords}}</div>
</div>
<div class="section">
<div class="section-title">Abstract</div>
<div class="abstract-box">{{.Abstract}}</div>
</div>
<div class="section">
<div class="section-title">Author Information</div>
{{range .Authors}}<div class="author-card">
<h4 style="margin: 0 0 10px 0; color: #1f2937;">Author {{.Num}}</h4>
<p style="margin: 5px 0;"><strong>Title:</strong> {{.Title}}</p>
<p style="margin: 5px 0;"><strong>Name:</strong> {{.Name}} {{.Surname}}</p>
<p style="margin: 5px 0;"><strong>Authorship:</strong> {{.Authorship}}</p>
<p style="margin: 5px 0;"><strong>Email:</strong> {{.Email}}</p>
<p style="margin: 5px 0;"><strong>Address:</strong> {{.Address}}</p>
<p style="margin: 5px 0;"><strong>Affiliation:</strong> {{.Affiliation}}</p>
</div>
{{end}}</div>
<div class="section">
<div class="section-title">Manuscript File</div>
<p>The manuscript file is attached to this email: <strong>{{.Filename}}</strong></p>
</div>
<div class="footer">
<p><strong>Next Steps:</strong></p>
<ol>
<li>Log in to your editorial account at {{.SiteURL}}</li>
<li>Go to Submissions &rarr; New Submission</li>
<li>Use the &quot;Submit on behalf of&quot; feature</li>
<li>Copy the author information, title, abstract, and keywords from this email</li>
<li>Upload the attached manuscript file</li>
<li>Assign to a Section Editor or begin the review process</li>
</ol>
<p style="margin-top: 15px;">Submission received: {{.Submitted}}</p>
</div>
</div>
</div>
</body>
</html>
`))

var authorReceiptTmpl = template.Must(template.New("author_receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: linear-gradient(135deg, #2563eb 0%, #1d4ed8 100%); color: white; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
.content { background: white; padding: 30px; border: 1px solid #e5e7eb; border-radius: 0 0 8px 8px; }
.success-icon { text-align: center; font-size: 48px; color: #059669; margin-bottom: 20px; }
.receipt-card { background: #f9fafb; padding: 15px; margin: 20px 0; border-radius: 5px; border-left: 4px solid #2563eb; }
.footer { margin-top: 20px; padding-top: 20px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 14px; text-align: center; }
</style>
</head>
<body>
<div class="container">
<div class="header">
<h1 style="margin: 0;">Thank You for Your Submission</h1>
</div>
<div class="content">
<div class="success-icon">&#10003;</div>
<p>Dear {{.AuthorName}},</p>
<p>Thank you for submitting your manuscript to {{.SiteName}}. We have successfully received your submission:</p>
<div class="receipt-card">
<p style="margin: 5px 0;"><strong>Title:</strong> {{.ManuscriptTitle}}</p>
<p style="margin: 5px 0;"><strong>Article Type:</strong> {{.ArticleType}}</p>
<p style="margin: 5px 0;"><strong>Submitted:</strong> {{.Submitted}}</p>
</div>
<p>Your manuscript will be reviewed by our editorial team. You will receive further communication regarding the status of your submission.</p>
<p>If you have any questions, please contact us at <a href="mailto:{{.AdminEmail}}">{{.AdminEmail}}</a>.</p>
<div class="footer">
<p>{{.SiteName}}<br>
<a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
</div>
</div>
</div>
</body>
</html>
`))
