package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/campaign"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Form defaults shown on a fresh page.
const (
	DefaultProduct  = "EcoSip Smart Bottle - Eco-friendly hydration tracking bottle"
	DefaultAudience = "18–35 year old health-conscious professionals in urban cities"
)

// MaxRecentLimit caps the limit accepted by the recent campaigns API.
const MaxRecentLimit = 100

type Pipeline interface {
	Generate(ctx context.Context, brief models.Brief) (*models.Campaign, error)
}

type Campaigns interface {
	GetCampaign(ctx context.Context, id string) (*models.Campaign, error)
	RecentCampaigns(ctx context.Context, limit int) ([]models.Campaign, error)
}

type Handler struct {
	pipeline  Pipeline
	campaigns Campaigns
	extractor extractor.Extractor
	logger    *zap.Logger
}

func NewHandler(pipeline Pipeline, campaigns Campaigns, ex extractor.Extractor, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline:  pipeline,
		campaigns: campaigns,
		extractor: ex,
		logger:    logger.Named("web"),
	}
}

// Register installs the templates, the pages, the JSON API and the static
// assets on r. mediaDir, when set, is served under /media.
func (h *Handler) Register(r *gin.Engine, mediaDir string) error {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 UTC") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	r.StaticFS("/static", http.FS(static))
	if mediaDir != "" {
		r.Static("/media", mediaDir)
	}

	r.GET("/", h.Index)
	r.POST("/campaigns", h.CreateCampaign)
	r.GET("/campaigns/:id", h.ShowCampaign)

	api := r.Group("/api")
	api.POST("/campaigns", h.APICreateCampaign)
	api.GET("/campaigns", h.APIRecentCampaigns)
	api.GET("/campaigns/:id", h.APIGetCampaign)
	api.POST("/extract", h.APIExtract)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return nil
}

type sectionView struct {
	Title string
	Body  string
}

func sections(c *models.Campaign) []sectionView {
	return []sectionView{
		{extractor.AdCopy, c.AdCopy},
		{extractor.EmailCopy, c.Email},
		{extractor.SocialPosts, c.Social},
		{extractor.RadioScript, c.RadioScript},
		{extractor.AudioBrief, c.AudioBrief},
	}
}

func (h *Handler) renderIndex(c *gin.Context, status int, brief models.Brief, msg string) {
	recent, err := h.campaigns.RecentCampaigns(c.Request.Context(), store.DefaultRecentLimit)
	if err != nil {
		h.logger.Warn("failed to load recent campaigns", zap.Error(err))
	}
	c.HTML(status, "index.html", gin.H{
		"Brief":  brief,
		"Error":  msg,
		"Recent": recent,
	})
}

func (h *Handler) renderCampaign(c *gin.Context, status int, cmp *models.Campaign) {
	c.HTML(status, "campaign.html", gin.H{
		"Campaign": cmp,
		"Sections": sections(cmp),
		"Fallback": extractor.Fallback,
	})
}

func (h *Handler) Index(c *gin.Context) {
	h.renderIndex(c, http.StatusOK, models.Brief{Product: DefaultProduct, Audience: DefaultAudience}, "")
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	var brief models.Brief
	if err := c.ShouldBind(&brief); err != nil {
		h.renderIndex(c, http.StatusBadRequest, brief, "The form could not be read.")
		return
	}

	cmp, err := h.pipeline.Generate(c.Request.Context(), brief)
	if err != nil {
		status, msg := h.generateError(err)
		h.renderIndex(c, status, brief, msg)
		return
	}
	h.renderCampaign(c, http.StatusOK, cmp)
}

func (h *Handler) ShowCampaign(c *gin.Context) {
	cmp, err := h.campaigns.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := h.lookupError(err)
		h.renderIndex(c, status, models.Brief{Product: DefaultProduct, Audience: DefaultAudience}, msg)
		return
	}
	h.renderCampaign(c, http.StatusOK, cmp)
}

func (h *Handler) APICreateCampaign(c *gin.Context) {
	var brief models.Brief
	if err := c.ShouldBindJSON(&brief); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	cmp, err := h.pipeline.Generate(c.Request.Context(), brief)
	if err != nil {
		status, msg := h.generateError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusCreated, cmp)
}

func (h *Handler) APIRecentCampaigns(c *gin.Context) {
	limit := store.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxRecentLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	recent, err := h.campaigns.RecentCampaigns(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list campaigns", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list campaigns"})
		return
	}
	if recent == nil {
		recent = []models.Campaign{}
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": recent})
}

func (h *Handler) APIGetCampaign(c *gin.Context) {
	cmp, err := h.campaigns.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, msg := h.lookupError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, cmp)
}

type extractRequest struct {
	Document string `json:"document"`
	Label    string `json:"label" binding:"required"`
	Mode     string `json:"mode"`
}

func (h *Handler) APIExtract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	ex := h.extractor
	if strings.TrimSpace(req.Mode) != "" {
		mode, err := extractor.ParseMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ex = extractor.New(mode)
	}

	c.JSON(http.StatusOK, gin.H{
		"label":   req.Label,
		"content": ex.Extract(req.Document, req.Label),
	})
}

func (h *Handler) generateError(err error) (int, string) {
	if errors.Is(err, campaign.ErrInvalidBrief) {
		return http.StatusBadRequest, briefMessage(err)
	}
	h.logger.Error("campaign generation failed", zap.Error(err))
	return http.StatusBadGateway, "Campaign generation failed: " + err.Error()
}

func (h *Handler) lookupError(err error) (int, string) {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, "Campaign not found."
	}
	h.logger.Error("failed to load campaign", zap.Error(err))
	return http.StatusInternalServerError, "The campaign could not be loaded."
}

// briefMessage turns a brief validation error into a sentence for the form.
func briefMessage(err error) string {
	for _, target := range []error{models.ErrMissingProduct, models.ErrMissingAudience, models.ErrFieldTooLong} {
		if errors.Is(err, target) {
			msg := target.Error()
			return strings.ToUpper(msg[:1]) + msg[1:] + "."
		}
	}
	return "The brief is invalid."
}
