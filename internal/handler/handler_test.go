package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blues/els/internal/escrow"
	"github.com/gin-gonic/gin"
)

type nopTransfer struct{}

func (nopTransfer) Transfer(to string, amount int64) error { return nil }

const (
	ownerAddr   = "0xplatform"
	creatorAddr = "0xcreator"
	backerAddr  = "0xbacker"
)

func newTestRouter(t *testing.T, clock *time.Time) (*gin.Engine, *escrow.Platform) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	platform, err := escrow.New(ownerAddr, 250, func() time.Time { return *clock }, nopTransfer{})
	if err != nil {
		t.Fatalf("new platform: %v", err)
	}

	campaignHandler := NewCampaignHandler(platform, nil)
	contributionHandler := NewContributionHandler(platform)
	settlementHandler := NewSettlementHandler(platform, nil)
	platformHandler := NewPlatformHandler(platform)

	r := gin.New()
	r.POST("/campaigns", campaignHandler.CreateCampaign)
	r.GET("/campaigns/:id", campaignHandler.GetCampaign)
	r.DELETE("/campaigns/:id", campaignHandler.DeactivateCampaign)
	r.GET("/campaigns/:id/contributors", campaignHandler.GetCampaignContributors)
	r.POST("/campaigns/:id/contributions", contributionHandler.Contribute)
	r.GET("/campaigns/:id/contributions/:address", contributionHandler.GetContribution)
	r.POST("/campaigns/:id/refund", settlementHandler.Refund)
	r.GET("/platform/stats", platformHandler.GetStats)
	r.PUT("/platform/fee-rate", platformHandler.SetFeeRate)
	return r, platform
}

func doJSON(t *testing.T, r *gin.Engine, method, path, caller string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Caller-Address", caller)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetCampaign(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRouter(t, &now)

	w := doJSON(t, r, http.MethodPost, "/campaigns", creatorAddr, CreateCampaignRequest{
		Title:        "Solar Farm",
		Description:  "Community solar installation",
		TargetAmount: 1000,
		DurationDays: 30,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/campaigns/1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/campaigns/9", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/campaigns/abc", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestCreateCampaignValidationStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRouter(t, &now)

	w := doJSON(t, r, http.MethodPost, "/campaigns", creatorAddr, CreateCampaignRequest{
		Title:        "Solar Farm",
		Description:  "desc",
		TargetAmount: 1000,
		DurationDays: 400,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad duration, got %d: %s", w.Code, w.Body.String())
	}
}

func TestContributeEndpoint(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRouter(t, &now)

	doJSON(t, r, http.MethodPost, "/campaigns", creatorAddr, CreateCampaignRequest{
		Title: "Solar Farm", Description: "desc", TargetAmount: 1000, DurationDays: 1,
	})

	w := doJSON(t, r, http.MethodPost, "/campaigns/1/contributions", backerAddr, ContributeRequest{Amount: 600})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 创建者自投被拒
	w = doJSON(t, r, http.MethodPost, "/campaigns/1/contributions", creatorAddr, ContributeRequest{Amount: 100})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for self funding, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/campaigns/1/contributions/"+backerAddr, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data struct {
			Amount int64 `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Amount != 600 {
		t.Fatalf("expected balance 600, got %d", resp.Data.Amount)
	}

	w = doJSON(t, r, http.MethodGet, "/campaigns/1/contributors", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRefundEndpointAfterDeadline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRouter(t, &now)

	doJSON(t, r, http.MethodPost, "/campaigns", creatorAddr, CreateCampaignRequest{
		Title: "Solar Farm", Description: "desc", TargetAmount: 1000, DurationDays: 1,
	})
	doJSON(t, r, http.MethodPost, "/campaigns/1/contributions", backerAddr, ContributeRequest{Amount: 400})

	// 未到截止时间
	w := doJSON(t, r, http.MethodPost, "/campaigns/1/refund", backerAddr, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 before deadline, got %d: %s", w.Code, w.Body.String())
	}

	now = now.Add(24 * time.Hour)
	w = doJSON(t, r, http.MethodPost, "/campaigns/1/refund", backerAddr, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 同一出资人重复退款
	w = doJSON(t, r, http.MethodPost, "/campaigns/1/refund", backerAddr, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for second refund, got %d", w.Code)
	}
}

func TestPlatformEndpoints(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRouter(t, &now)

	w := doJSON(t, r, http.MethodPut, "/platform/fee-rate", backerAddr, SetFeeRateRequest{FeeRateBps: 100})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non owner, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPut, "/platform/fee-rate", ownerAddr, SetFeeRateRequest{FeeRateBps: 2000})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for rate above cap, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodPut, "/platform/fee-rate", ownerAddr, SetFeeRateRequest{FeeRateBps: 100})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/platform/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/campaigns/1", backerAddr, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non owner deactivate, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/campaigns/1", ownerAddr, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before any campaign exists, got %d", w.Code)
	}
}
