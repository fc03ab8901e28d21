package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/campaign"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePipeline struct {
	err   error
	brief models.Brief
}

func (f *fakePipeline) Generate(_ context.Context, brief models.Brief) (*models.Campaign, error) {
	f.brief = brief
	if f.err != nil {
		return nil, f.err
	}
	return &models.Campaign{
		ID:               "c-1",
		Product:          brief.Product,
		Audience:         brief.Audience,
		AdCopy:           "Sip smarter.",
		ImageURL:         campaign.PlaceholderImage,
		ImagePlaceholder: true,
		Notices:          []models.Notice{{Stage: models.StageImage, Message: "Image generation failed: 503"}},
	}, nil
}

type fakeCampaigns struct {
	byID   map[string]*models.Campaign
	err    error
	limits []int
}

func (f *fakeCampaigns) GetCampaign(_ context.Context, id string) (*models.Campaign, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (f *fakeCampaigns) RecentCampaigns(_ context.Context, limit int) ([]models.Campaign, error) {
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Campaign
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func newTestServer(t *testing.T, p Pipeline, cs Campaigns) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(p, cs, extractor.New(extractor.ModeLines), zap.NewNop())
	require.NoError(t, h.Register(r, ""))
	return r
}

func do(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func storedCampaign() *models.Campaign {
	return &models.Campaign{
		ID:          "stored-1",
		Product:     "EcoSip",
		Audience:    "hikers",
		Email:       "Subject: Meet EcoSip",
		RadioScript: "ANNOUNCER: Thirsty?",
		AudioURL:    "/media/stored-1/audio.mp3",
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIndex(t *testing.T) {
	cs := &fakeCampaigns{byID: map[string]*models.Campaign{"stored-1": storedCampaign()}}
	w := do(newTestServer(t, &fakePipeline{}, cs), http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "EcoSip Smart Bottle - Eco-friendly hydration tracking bottle")
	assert.Contains(t, body, `href="/campaigns/stored-1"`)
	assert.Equal(t, []int{store.DefaultRecentLimit}, cs.limits)
}

func TestCreateCampaign_Form(t *testing.T) {
	p := &fakePipeline{}
	r := newTestServer(t, p, &fakeCampaigns{})
	form := url.Values{"product": {"EcoSip"}, "audience": {"hikers"}}

	w := do(r, http.MethodPost, "/campaigns", "application/x-www-form-urlencoded", form.Encode())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Brief{Product: "EcoSip", Audience: "hikers"}, p.brief)
	body := w.Body.String()
	assert.Contains(t, body, "Sip smarter.")
	assert.Contains(t, body, extractor.Fallback)
	assert.Contains(t, body, "Image generation failed: 503")
	assert.Contains(t, body, campaign.PlaceholderImage)
}

func TestCreateCampaign_FormErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{
			name:   "invalid brief",
			err:    fmt.Errorf("%w: %w", campaign.ErrInvalidBrief, models.ErrMissingAudience),
			status: http.StatusBadRequest,
			want:   "Target audience is required.",
		},
		{
			name:   "text generation failed",
			err:    errors.New("model unavailable"),
			status: http.StatusBadGateway,
			want:   "model unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestServer(t, &fakePipeline{err: tt.err}, &fakeCampaigns{})
			form := url.Values{"product": {"EcoSip"}, "audience": {""}}
			w := do(r, http.MethodPost, "/campaigns", "application/x-www-form-urlencoded", form.Encode())

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Contains(t, w.Body.String(), `value="EcoSip"`)
		})
	}
}

func TestShowCampaign(t *testing.T) {
	cs := &fakeCampaigns{byID: map[string]*models.Campaign{"stored-1": storedCampaign()}}
	r := newTestServer(t, &fakePipeline{}, cs)

	w := do(r, http.MethodGet, "/campaigns/stored-1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ANNOUNCER: Thirsty?")
	assert.Contains(t, w.Body.String(), `<audio controls src="/media/stored-1/audio.mp3">`)

	w = do(r, http.MethodGet, "/campaigns/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Campaign not found.")
}

func TestAPICreateCampaign(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		r := newTestServer(t, &fakePipeline{}, &fakeCampaigns{})
		w := do(r, http.MethodPost, "/api/campaigns", "application/json", `{"product":"EcoSip","audience":"hikers"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var got models.Campaign
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "c-1", got.ID)
		assert.True(t, got.ImagePlaceholder)
		assert.Len(t, got.Notices, 1)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newTestServer(t, &fakePipeline{}, &fakeCampaigns{})
		w := do(r, http.MethodPost, "/api/campaigns", "application/json", `{"product":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid brief", func(t *testing.T) {
		p := &fakePipeline{err: fmt.Errorf("%w: %w", campaign.ErrInvalidBrief, models.ErrMissingProduct)}
		w := do(newTestServer(t, p, &fakeCampaigns{}), http.MethodPost, "/api/campaigns", "application/json", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Product details are required."}`, w.Body.String())
	})
}

func TestAPIRecentCampaigns(t *testing.T) {
	cs := &fakeCampaigns{byID: map[string]*models.Campaign{"stored-1": storedCampaign()}}
	r := newTestServer(t, &fakePipeline{}, cs)

	w := do(r, http.MethodGet, "/api/campaigns?limit=5", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Campaigns []models.Campaign `json:"campaigns"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Campaigns, 1)
	assert.Equal(t, []int{5}, cs.limits)

	for _, bad := range []string{"0", "abc", "101"} {
		w := do(r, http.MethodGet, "/api/campaigns?limit="+bad, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}

	failing := newTestServer(t, &fakePipeline{}, &fakeCampaigns{err: errors.New("db down")})
	w = do(failing, http.MethodGet, "/api/campaigns", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAPIGetCampaign(t *testing.T) {
	cs := &fakeCampaigns{byID: map[string]*models.Campaign{"stored-1": storedCampaign()}}
	r := newTestServer(t, &fakePipeline{}, cs)

	w := do(r, http.MethodGet, "/api/campaigns/stored-1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"radio_script":"ANNOUNCER: Thirsty?"`)

	w = do(r, http.MethodGet, "/api/campaigns/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIExtract(t *testing.T) {
	r := newTestServer(t, &fakePipeline{}, &fakeCampaigns{})
	doc := "Ad Copy:\nBuy Now!\n\nEmail Marketing Copy:\nHello there"

	tests := []struct {
		name   string
		body   map[string]string
		status int
		want   string
	}{
		{"default mode", map[string]string{"document": doc, "label": "Ad Copy"}, http.StatusOK, `{"label":"Ad Copy","content":"Buy Now!"}`},
		{"pattern mode", map[string]string{"document": doc, "label": "Email Marketing Copy", "mode": "pattern"}, http.StatusOK, `{"label":"Email Marketing Copy","content":"Hello there"}`},
		{"missing label", map[string]string{"document": doc, "label": "Radio Script"}, http.StatusOK, `{"label":"Radio Script","content":""}`},
		{"unknown mode", map[string]string{"document": doc, "label": "Ad Copy", "mode": "fuzzy"}, http.StatusBadRequest, ""},
		{"no label", map[string]string{"document": doc}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.body)
			require.NoError(t, err)
			w := do(r, http.MethodPost, "/api/extract", "application/json", string(body))
			assert.Equal(t, tt.status, w.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, w.Body.String())
			}
		})
	}
}

func TestHealthAndStatic(t *testing.T) {
	r := newTestServer(t, &fakePipeline{}, &fakeCampaigns{})

	w := do(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = do(r, http.MethodGet, campaign.PlaceholderImage, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<svg")
}
