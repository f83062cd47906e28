package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/api/middleware"
	"github.com/feral-file/ff-ip-registry/internal/api/rest"
	"github.com/feral-file/ff-ip-registry/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-ip-registry/internal/api/shared/errors"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/mocks"
	"github.com/feral-file/ff-ip-registry/internal/registry"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

const (
	testAPIKey  = "test-api-key"
	adminAddr   = "0x1111111111111111111111111111111111111111"
	ownerAddr   = "0x2222222222222222222222222222222222222222"
	deniedAddr  = "0x9999999999999999999999999999999999999999"
	testTokenID = "42"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testHandlerMocks contains all the mocks needed for testing the handler
type testHandlerMocks struct {
	ctrl     *gomock.Controller
	registry *mocks.MockRegistry
	store    *mocks.MockStore
	router   *gin.Engine
}

// setupTestHandler creates all the mocks and a router serving the handler
func setupTestHandler(t *testing.T) *testHandlerMocks {
	ctrl := gomock.NewController(t)

	tm := &testHandlerMocks{
		ctrl:     ctrl,
		registry: mocks.NewMockRegistry(ctrl),
		store:    mocks.NewMockStore(ctrl),
		router:   gin.New(),
	}

	denylist, err := access.NewDenylist([]string{deniedAddr})
	require.NoError(t, err)

	handler := rest.NewHandler(true, tm.registry, tm.store)
	rest.SetupRoutes(tm.router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}}, denylist)

	return tm
}

// tearDownTestHandler cleans up the test mocks
func tearDownTestHandler(mocks *testHandlerMocks) {
	mocks.ctrl.Finish()
}

// do sends a request, authenticated on behalf of caller when caller is not empty
func (tm *testHandlerMocks) do(t *testing.T, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
		req.Header.Set(middleware.ON_BEHALF_OF_HEADER, caller)
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func testAsset() *schema.IPAsset {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &schema.IPAsset{
		TokenID:      domain.MustParseTokenID(testTokenID),
		MetadataURI:  "ipfs://meta",
		RoyaltyRate:  100,
		ExpiryDate:   now.AddDate(1, 0, 0),
		LicenseTerms: "CC-BY",
		TotalSupply:  1000,
		RegisteredBy: domain.MustParseAddress(adminAddr),
		CreatedAt:    now,
		UpdatedAt:    now,
		Owners: []schema.IPAssetOwner{
			{TokenID: domain.MustParseTokenID(testTokenID), Position: 0, OwnerAddress: domain.MustParseAddress(ownerAddr), Share: 1000},
		},
	}
}

func testProposal(status domain.ProposalStatus) *registry.ProposalDetail {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &registry.ProposalDetail{
		Proposal: &schema.Proposal{
			ID:          1,
			TokenID:     domain.MustParseTokenID(testTokenID),
			Proposer:    domain.MustParseAddress(ownerAddr),
			Description: "new terms",
			Deadline:    now.Add(7 * 24 * time.Hour),
			CreatedAt:   now,
		},
		Status: status,
	}
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	w := tm.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-ip-registry-api"}`, w.Body.String())
}

func TestGetRoles(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetRoles(gomock.Any()).Return(&domain.Roles{
			Administrator:   domain.MustParseAddress(adminAddr),
			DisputeResolver: domain.MustParseAddress(ownerAddr),
		}, nil)

		w := tm.do(t, http.MethodGet, "/api/v1/roles", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"administrator":"`+adminAddr+`","dispute_resolver":"`+ownerAddr+`"}`, w.Body.String())
	})

	t.Run("not initialized", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetRoles(gomock.Any()).Return(nil, registry.ErrRolesNotInitialized)

		w := tm.do(t, http.MethodGet, "/api/v1/roles", "", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, apierrors.ErrCodeServiceError, decodeAPIError(t, w).Code)
	})
}

func TestSetDisputeResolver(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			SetDisputeResolver(gomock.Any(), domain.MustParseAddress(adminAddr), domain.MustParseAddress(ownerAddr)).
			Return(&domain.Roles{
				Administrator:   domain.MustParseAddress(adminAddr),
				DisputeResolver: domain.MustParseAddress(ownerAddr),
			}, nil)

		w := tm.do(t, http.MethodPut, "/api/v1/roles/dispute-resolver", adminAddr,
			dto.SetDisputeResolverRequest{DisputeResolver: ownerAddr})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed address", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodPut, "/api/v1/roles/dispute-resolver", adminAddr,
			dto.SetDisputeResolverRequest{DisputeResolver: "not-an-address"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "invalid_account", decodeAPIError(t, w).Details)
	})

	t.Run("not administrator", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			SetDisputeResolver(gomock.Any(), domain.MustParseAddress(ownerAddr), gomock.Any()).
			Return(nil, domain.ErrNotAdministrator)

		w := tm.do(t, http.MethodPut, "/api/v1/roles/dispute-resolver", ownerAddr,
			dto.SetDisputeResolverRequest{DisputeResolver: ownerAddr})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "not_administrator", decodeAPIError(t, w).Details)
	})
}

func TestRegisterIP(t *testing.T) {
	validRequest := dto.RegisterIPRequest{
		TokenID:      testTokenID,
		MetadataURI:  "ipfs://meta",
		Owners:       []string{ownerAddr},
		Shares:       []uint32{1000},
		RoyaltyRate:  100,
		ExpiryDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		LicenseTerms: "CC-BY",
	}

	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			RegisterIP(gomock.Any(), domain.MustParseAddress(adminAddr), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Address, input registry.RegisterIPInput) (*schema.IPAsset, error) {
				assert.Equal(t, domain.MustParseTokenID(testTokenID), input.TokenID)
				assert.Equal(t, []domain.Address{domain.MustParseAddress(ownerAddr)}, input.Owners)
				assert.Equal(t, []uint32{1000}, input.Shares)
				return testAsset(), nil
			})

		w := tm.do(t, http.MethodPost, "/api/v1/assets", adminAddr, validRequest)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.AssetResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testTokenID, resp.TokenID)
		assert.Equal(t, uint32(1000), resp.TotalSupply)
		require.Len(t, resp.Owners, 1)
		assert.Equal(t, ownerAddr, resp.Owners[0].Owner)
	})

	t.Run("requires authentication", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodPost, "/api/v1/assets", "", validRequest)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("denied caller", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodPost, "/api/v1/assets", deniedAddr, validRequest)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "denied_account", decodeAPIError(t, w).Details)
	})

	t.Run("malformed token id", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		req := validRequest
		req.TokenID = "-1"
		w := tm.do(t, http.MethodPost, "/api/v1/assets", adminAddr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "invalid_token_id", decodeAPIError(t, w).Details)
	})

	t.Run("already registered", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().RegisterIP(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrAlreadyRegistered)

		w := tm.do(t, http.MethodPost, "/api/v1/assets", adminAddr, validRequest)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "already_registered", decodeAPIError(t, w).Details)
	})

	t.Run("unexpected failure", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().RegisterIP(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		w := tm.do(t, http.MethodPost, "/api/v1/assets", adminAddr, validRequest)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apierrors.ErrCodeInternalError, decodeAPIError(t, w).Code)
	})
}

func TestListAssets(t *testing.T) {
	t.Run("filtered by owner", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		owner := domain.MustParseAddress(ownerAddr)
		tm.registry.EXPECT().ListAssets(gomock.Any(), &owner, 1, uint64(0)).Return([]*schema.IPAsset{testAsset()}, uint64(3), nil)

		w := tm.do(t, http.MethodGet, "/api/v1/assets?owner="+ownerAddr+"&limit=1", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.AssetListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Assets, 1)
		assert.Equal(t, uint64(3), resp.Total)
		require.NotNil(t, resp.Offset)
		assert.Equal(t, uint64(1), *resp.Offset)
	})

	t.Run("limit out of range", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodGet, "/api/v1/assets?limit=1000", "", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetIPMetadata(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetIPMetadata(gomock.Any(), domain.MustParseTokenID(testTokenID)).Return(nil, domain.ErrAssetNotFound)

		w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID, "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "asset_not_found", decodeAPIError(t, w).Details)
	})

	t.Run("invalid token id", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodGet, "/api/v1/assets/abc", "", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestOwnershipQueries(t *testing.T) {
	t.Run("get owner", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetOwner(gomock.Any(), domain.MustParseTokenID(testTokenID), 0).Return(domain.MustParseAddress(ownerAddr), nil)

		w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID+"/owners/0", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token_id":"42","index":0,"owner":"`+ownerAddr+`"}`, w.Body.String())
	})

	t.Run("owner index out of range", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetOwner(gomock.Any(), gomock.Any(), 5).Return(domain.Address(""), domain.ErrOwnerIndexOutOfRange)

		w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID+"/owners/5", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("share of non-owner", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetOwnershipShare(gomock.Any(), domain.MustParseTokenID(testTokenID), domain.MustParseAddress(adminAddr)).Return(uint32(0), nil)

		w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID+"/shares/"+adminAddr, "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token_id":"42","owner":"`+adminAddr+`","share":0}`, w.Body.String())
	})

	t.Run("total supply", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetTotalSupply(gomock.Any(), domain.MustParseTokenID(testTokenID)).Return(uint32(1000), nil)

		w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID+"/supply", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token_id":"42","total_supply":1000}`, w.Body.String())
	})
}

func TestDistributeRoyalties(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			DistributeRoyalties(gomock.Any(), domain.MustParseAddress(adminAddr), domain.MustParseTokenID(testTokenID), big.NewInt(1000)).
			Return(&schema.RoyaltyDistribution{
				ID:            1,
				TokenID:       domain.MustParseTokenID(testTokenID),
				TotalAmount:   "1000",
				DistributedBy: domain.MustParseAddress(adminAddr),
				Payouts: []schema.RoyaltyPayout{
					{OwnerAddress: domain.MustParseAddress(ownerAddr), Share: 1000, Amount: "1000"},
				},
			}, nil)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/royalties", adminAddr,
			dto.DistributeRoyaltiesRequest{Amount: "1000"})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.RoyaltyDistributionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1000", resp.TotalAmount)
		require.Len(t, resp.Payouts, 1)
		assert.Equal(t, "1000", resp.Payouts[0].Amount)
	})

	t.Run("invalid amount", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/royalties", adminAddr,
			dto.DistributeRoyaltiesRequest{Amount: "1.5"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "invalid_amount", decodeAPIError(t, w).Details)
	})

	t.Run("no ip data", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().DistributeRoyalties(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrNoIPData)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/royalties", adminAddr,
			dto.DistributeRoyaltiesRequest{Amount: "10"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "no_ip_data", decodeAPIError(t, w).Details)
	})
}

func TestGetAccountBalance(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.registry.EXPECT().GetAccountBalance(gomock.Any(), domain.MustParseAddress(ownerAddr)).Return(big.NewInt(333), nil)

	w := tm.do(t, http.MethodGet, "/api/v1/accounts/"+ownerAddr+"/balance", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"account":"`+ownerAddr+`","balance":"333"}`, w.Body.String())
}

func TestProposals(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			CreateProposal(gomock.Any(), domain.MustParseAddress(ownerAddr), domain.MustParseTokenID(testTokenID), "new terms").
			Return(testProposal(domain.ProposalStatusOpen), nil)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/proposals", ownerAddr,
			dto.CreateProposalRequest{Description: "new terms"})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.ProposalResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, uint64(1), resp.ID)
		assert.Equal(t, domain.ProposalStatusOpen, resp.Status)
	})

	t.Run("create by non-owner", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().CreateProposal(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotAnOwner)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/proposals", adminAddr,
			dto.CreateProposalRequest{Description: "new terms"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("vote", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			Vote(gomock.Any(), domain.MustParseAddress(ownerAddr), domain.MustParseTokenID(testTokenID), uint64(1), true).
			Return(testProposal(domain.ProposalStatusOpen), nil)

		support := true
		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/proposals/1/votes", ownerAddr,
			dto.VoteRequest{Support: &support})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("vote without support", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/proposals/1/votes", ownerAddr,
			dto.VoteRequest{})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("vote twice", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().Vote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrAlreadyVoted)

		support := false
		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/proposals/1/votes", ownerAddr,
			dto.VoteRequest{Support: &support})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "already_voted", decodeAPIError(t, w).Details)
	})

	t.Run("invalid proposal id", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/proposals/0/execute", ownerAddr, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("execute rejected", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			ExecuteProposal(gomock.Any(), domain.MustParseAddress(ownerAddr), domain.MustParseTokenID(testTokenID), uint64(1)).
			Return(nil, domain.ErrProposalRejected)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/proposals/1/execute", ownerAddr, nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "proposal_rejected", decodeAPIError(t, w).Details)
	})

	t.Run("get", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().GetProposal(gomock.Any(), uint64(1)).Return(testProposal(domain.ProposalStatusLapsed), nil)

		w := tm.do(t, http.MethodGet, "/api/v1/proposals/1", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.ProposalResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.ProposalStatusLapsed, resp.Status)
	})

	t.Run("list", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			ListProposals(gomock.Any(), domain.MustParseTokenID(testTokenID), 20, uint64(0)).
			Return([]*registry.ProposalDetail{testProposal(domain.ProposalStatusOpen)}, uint64(1), nil)

		w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID+"/proposals", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.ProposalListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Proposals, 1)
		assert.Nil(t, resp.Offset)
	})
}

func TestResolveDispute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			ResolveDispute(gomock.Any(), domain.MustParseAddress(adminAddr), domain.MustParseTokenID(testTokenID), "settled").
			Return(&schema.DisputeResolution{
				ID:         1,
				TokenID:    domain.MustParseTokenID(testTokenID),
				Resolver:   domain.MustParseAddress(adminAddr),
				Resolution: "settled",
			}, nil)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/disputes", adminAddr,
			dto.ResolveDisputeRequest{Resolution: "settled"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("not dispute resolver", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().ResolveDispute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotDisputeResolver)

		w := tm.do(t, http.MethodPost, "/api/v1/assets/"+testTokenID+"/disputes", ownerAddr,
			dto.ResolveDisputeRequest{Resolution: "settled"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestGetChanges(t *testing.T) {
	t.Run("full page returns next anchor", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.registry.EXPECT().
			GetChanges(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter store.ChangesQueryFilter) ([]*schema.ChangesJournal, uint64, error) {
				assert.Equal(t, 2, filter.Limit)
				require.NotNil(t, filter.Anchor)
				assert.Equal(t, uint64(10), *filter.Anchor)
				assert.Equal(t, []schema.SubjectType{schema.SubjectTypeVote}, filter.SubjectTypes)
				return []*schema.ChangesJournal{
					{ID: 11, SubjectType: schema.SubjectTypeVote, SubjectID: "1"},
					{ID: 12, SubjectType: schema.SubjectTypeVote, SubjectID: "2"},
				}, uint64(5), nil
			})

		w := tm.do(t, http.MethodGet, "/api/v1/changes?subject_type=vote&anchor=10&limit=2", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.ChangeListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Changes, 2)
		require.NotNil(t, resp.NextAnchor)
		assert.Equal(t, uint64(12), *resp.NextAnchor)
	})

	t.Run("unsupported subject type", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodGet, "/api/v1/changes?subject_type=token", "", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCreateWebhookClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		tm.store.EXPECT().
			CreateWebhookClient(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input store.CreateWebhookClientInput) (*schema.WebhookClient, error) {
				assert.Len(t, input.ClientID, 36)
				assert.Len(t, input.WebhookSecret, 64)
				assert.JSONEq(t, `["ip.registered"]`, string(input.EventFilters))
				assert.True(t, input.IsActive)
				assert.Equal(t, 5, input.RetryMaxAttempts)
				return &schema.WebhookClient{
					ClientID:         input.ClientID,
					WebhookURL:       input.WebhookURL,
					WebhookSecret:    input.WebhookSecret,
					EventFilters:     input.EventFilters,
					IsActive:         input.IsActive,
					RetryMaxAttempts: input.RetryMaxAttempts,
				}, nil
			})

		w := tm.do(t, http.MethodPost, "/api/v1/webhooks/clients", adminAddr, dto.CreateWebhookClientRequest{
			WebhookURL:   "https://example.com/hook",
			EventFilters: []string{"ip.registered"},
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.CreateWebhookClientResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.WebhookSecret)
		assert.Equal(t, []string{"ip.registered"}, resp.EventFilters)
	})

	t.Run("unsupported event filter", func(t *testing.T) {
		tm := setupTestHandler(t)
		defer tearDownTestHandler(tm)

		w := tm.do(t, http.MethodPost, "/api/v1/webhooks/clients", adminAddr, dto.CreateWebhookClientRequest{
			WebhookURL:   "https://example.com/hook",
			EventFilters: []string{"token.transferred"},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestListDisputeResolutions(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.registry.EXPECT().
		ListDisputeResolutions(gomock.Any(), domain.MustParseTokenID(testTokenID), 1, uint64(0)).
		Return([]*schema.DisputeResolution{
			{ID: 1, TokenID: domain.MustParseTokenID(testTokenID), Resolver: domain.MustParseAddress(adminAddr), Resolution: "settled"},
		}, uint64(2), nil)

	w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID+"/disputes?limit=1", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DisputeResolutionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Resolutions, 1)
	assert.Equal(t, "settled", resp.Resolutions[0].Resolution)
	require.NotNil(t, resp.Offset)
	assert.Equal(t, uint64(1), *resp.Offset)
}

func TestListRoyaltyDistributions(t *testing.T) {
	tm := setupTestHandler(t)
	defer tearDownTestHandler(tm)

	tm.registry.EXPECT().
		ListRoyaltyDistributions(gomock.Any(), domain.MustParseTokenID(testTokenID), 20, uint64(5)).
		Return(nil, uint64(5), nil)

	w := tm.do(t, http.MethodGet, "/api/v1/assets/"+testTokenID+"/royalties?offset=5", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":5}`, w.Body.String())
}
