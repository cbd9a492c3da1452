package submission

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"journalhub/internal/mailer"
	"journalhub/internal/ratelimit"
	"journalhub/pkg/config"
	"journalhub/pkg/models"
)

// Outward messages. Validation messages live in validate.go; everything
// here is an outcome of the pipeline itself.
const (
	msgInvalidMethod    = "Invalid request method"
	msgRateLimited      = "Too many submissions from your address. Please try again later."
	msgSuccess          = "Submission successful! A confirmation email has been sent to your email address."
	msgSuccessNoReceipt = "Submission successful! However, we could not send a confirmation email to your address."
	msgEmailFailed      = "Failed to send submission emails. Please try again or contact the administrator."
	msgUnexpected       = "An unexpected error occurred. Please try again later."
)

// Handler drives one submission from raw form to JSON result.
type Handler struct {
	Config    *config.Config
	Validator *Validator
	Composer  *mailer.Composer
	Sender    mailer.Sender
	Limiter   *ratelimit.Limiter // nil disables rate limiting
}

func NewHandler(cfg *config.Config, sender mailer.Sender, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		Config:    cfg,
		Validator: NewValidator(cfg.Limits),
		Composer:  mailer.NewComposer(cfg.Journal),
		Sender:    sender,
		Limiter:   limiter,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	// Any, not POST: the method gate answers with the pipeline's own
	// JSON shape instead of the router's bare 404
	rg.Any("", h.submit)
	rg.GET("/options", h.options)
}

// submit is the whole pipeline: method gate, rate-limit gate, parse,
// validate, compose, dispatch admin then author, encode. Exactly one
// response is written.
func (h *Handler) submit(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[submission] unexpected error: %v", r)
			if !c.Writer.Written() {
				respond(c, false, msgUnexpected)
			}
		}
	}()

	if c.Request.Method != http.MethodPost {
		respond(c, false, msgInvalidMethod)
		return
	}

	if h.Limiter != nil && !h.Limiter.Allow(c.ClientIP()) {
		respond(c, false, msgRateLimited)
		return
	}

	payload := ParsePayload(c.Request)
	sub, errs := h.Validator.Validate(payload)
	if len(errs) > 0 {
		// normal user feedback, never logged
		respond(c, false, JoinMessages(errs))
		return
	}

	notice, err := h.Composer.AdminNotice(sub)
	if err != nil {
		log.Printf("[submission] compose admin notice for %q: %v", sub.Metadata.ManuscriptTitle, err)
		respond(c, false, msgUnexpected)
		return
	}
	receipt, err := h.Composer.AuthorReceipt(sub)
	if err != nil {
		log.Printf("[submission] compose author receipt for %q: %v", sub.Metadata.ManuscriptTitle, err)
		respond(c, false, msgUnexpected)
		return
	}

	// one attempt each, admin first; both outcomes observed before the
	// response is encoded
	adminErr := h.Sender.Send(notice)
	authorErr := h.Sender.Send(receipt)

	title := sub.Metadata.ManuscriptTitle
	switch {
	case adminErr == nil && authorErr == nil:
		log.Printf("[submission] received %q from %s (%d authors)", title, sub.CorrespondingAuthor().Email, len(sub.Authors))
		respond(c, true, msgSuccess)
	case adminErr == nil:
		// admin leg is the one that matters; a lost receipt degrades
		// the message but not the outcome
		log.Printf("[submission] received %q from %s; author receipt failed: %v", title, sub.CorrespondingAuthor().Email, authorErr)
		respond(c, true, msgSuccessNoReceipt)
	default:
		log.Printf("[submission] failed to send submission emails for: %s (admin: %v)", title, adminErr)
		respond(c, false, msgEmailFailed)
	}
}

// options serves the closed vocabularies and limits the submission form
// renders from, so the form and the validator share one source of truth.
func (h *Handler) options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"article_types":    h.Config.Options.ArticleTypes,
		"author_titles":    h.Config.Options.AuthorTitles,
		"authorship_types": h.Config.Options.AuthorshipTypes,
		"limits": gin.H{
			"max_file_bytes":     h.Config.Limits.MaxFileBytes,
			"allowed_extensions": h.Config.Limits.Extensions(),
			"max_abstract_words": h.Config.Limits.MaxAbstractWords,
			"min_keywords":       h.Config.Limits.MinKeywords,
			"max_keywords":       h.Config.Limits.MaxKeywords,
			"keyword_separator":  ";",
		},
	})
}

// respond writes the single JSON result. Failure is signaled in the
// body, not the status code.
func respond(c *gin.Context, success bool, message string) {
	c.JSON(http.StatusOK, models.SubmissionResult{Success: success, Message: message})
}
