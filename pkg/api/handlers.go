package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ggrmusic/ggr-web/pkg/carousel"
	"github.com/ggrmusic/ggr-web/pkg/content"
	"github.com/ggrmusic/ggr-web/pkg/flash"
	"github.com/ggrmusic/ggr-web/pkg/models"
	"github.com/ggrmusic/ggr-web/pkg/services"
	"github.com/ggrmusic/ggr-web/pkg/web"
)

// BadRequestMessage is shown when a submission cannot be parsed at all.
const BadRequestMessage = "We could not read your submission. Please check the form and try again."

// Handlers contains all HTTP handlers for the site
type Handlers struct {
	subscriptionService services.SubscriptionService
	site                *content.Site
	flashes             flash.Store
	carouselInterval    time.Duration
	logger              *slog.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	subscriptionService services.SubscriptionService,
	site *content.Site,
	flashes flash.Store,
	carouselInterval time.Duration,
	logger *slog.Logger,
) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		subscriptionService: subscriptionService,
		site:                site,
		flashes:             flashes,
		carouselInterval:    carouselInterval,
		logger:              logger,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h *Handlers) page(c *gin.Context, title string) web.Page {
	p := web.NewPage(title, h.site, h.carouselInterval)
	if f, ok := h.flashes.ReadAndClear(c.Writer, c.Request); ok {
		p.Flash = &f
	}
	return p
}

// Home renders the landing page.
func (h *Handlers) Home(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageHome, h.page(c, ""))
}

// Shows renders the shows page.
func (h *Handlers) Shows(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageShows, h.page(c, "Shows"))
}

// SubscribePage renders the subscription form. The optional email query
// parameter pre-fills the email field.
func (h *Handlers) SubscribePage(c *gin.Context) {
	p := h.page(c, "Subscribe")
	var old, errs map[string][]string
	if p.Flash != nil {
		old, errs = p.Flash.Old, p.Flash.Errors
	}
	p.Form = web.NewForm(old, errs, c.Query("email"))
	c.HTML(http.StatusOK, web.PageSubscribe, p)
}

// Gallery renders the photo grid and, when open=1, the lightbox at index i.
// The action parameter applies one lightbox navigation step; set=hero
// browses the landing page carousel instead of the gallery.
func (h *Handlers) Gallery(c *gin.Context) {
	set, slides := "", h.site.Gallery
	if c.Query("set") == web.SetHero {
		set, slides = web.SetHero, h.site.Hero
	}

	m, err := carousel.New(slides)
	if err != nil {
		h.logger.Error("gallery has no slides", "err", err)
		c.String(http.StatusInternalServerError, "Gallery unavailable")
		return
	}

	if c.Query("open") == "1" {
		if i, err := strconv.Atoi(c.Query("i")); err == nil {
			m.Dispatch(carousel.Event{Kind: carousel.Select, Index: i})
		}
	}
	if ev, ok := galleryActions[c.Query("action")]; ok {
		m.Dispatch(carousel.Event{Kind: ev})
	}

	state := m.State()
	p := h.page(c, "Gallery")
	p.Gallery = &web.GalleryView{
		Set:    set,
		State:  state,
		Slides: m.Slides(),
		Open:   state.Mode == carousel.LightboxOpen,
	}
	c.HTML(http.StatusOK, web.PageGallery, p)
}

var galleryActions = map[string]carousel.EventKind{
	"next":  carousel.KeyRight,
	"prev":  carousel.KeyLeft,
	"close": carousel.Close,
}

// GalleryJSON returns the carousel slides for client-side playback.
func (h *Handlers) GalleryJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"interval_ms": h.carouselInterval.Milliseconds(),
		"hero":        h.site.Hero,
		"gallery":     h.site.Gallery,
	})
}

// HandleSubscribe processes the subscription form.
func (h *Handlers) HandleSubscribe(c *gin.Context) {
	var input models.SubscriptionInput
	if err := c.ShouldBind(&input); err != nil {
		h.logger.Warn("error parsing subscription request", "err", err, "content_type", c.ContentType())
		if wantsJSON(c) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": BadRequestMessage})
			return
		}
		h.flashes.Write(c.Writer, flash.Error(BadRequestMessage, nil, nil))
		c.Redirect(http.StatusSeeOther, redirectBack(c))
		return
	}

	outcome := h.subscriptionService.Submit(c.Request.Context(), input, services.RequestMeta{
		IPAddress: c.ClientIP(),
	})

	if wantsJSON(c) {
		h.respondJSON(c, outcome)
		return
	}

	switch outcome.Status {
	case services.StatusSuccess:
		h.flashes.Write(c.Writer, flash.Success(outcome.Message))
	case services.StatusInvalidInput:
		h.flashes.Write(c.Writer, flash.Error(outcome.Message, outcome.FieldErrors, input.Values()))
	default:
		h.flashes.Write(c.Writer, flash.Error(outcome.Message, nil, input.Values()))
	}
	c.Redirect(http.StatusSeeOther, redirectBack(c))
}

func (h *Handlers) respondJSON(c *gin.Context, outcome services.Outcome) {
	switch outcome.Status {
	case services.StatusSuccess:
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": outcome.Message})
	case services.StatusInvalidInput:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  "invalid",
			"message": outcome.Message,
			"errors":  outcome.FieldErrors,
		})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": outcome.Message})
	}
}

func wantsJSON(c *gin.Context) bool {
	if c.ContentType() == gin.MIMEJSON {
		return true
	}
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// redirectBack returns the same-site referring path, or /subscribe.
func redirectBack(c *gin.Context) string {
	const fallback = "/subscribe"
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	back := url.URL{Path: ref.Path, RawQuery: ref.RawQuery}
	return back.String()
}
