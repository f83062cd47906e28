package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/api/middleware"
	"github.com/feral-file/ff-ip-registry/internal/api/shared/constants"
	"github.com/feral-file/ff-ip-registry/internal/api/shared/dto"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/registry"
	"github.com/feral-file/ff-ip-registry/internal/store"
	internalTypes "github.com/feral-file/ff-ip-registry/internal/types"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetRoles retrieves the registry roles
	// GET /api/v1/roles
	GetRoles(c *gin.Context)

	// SetDisputeResolver replaces the dispute resolver (administrator)
	// PUT /api/v1/roles/dispute-resolver
	SetDisputeResolver(c *gin.Context)

	// RegisterIP registers an asset with its ownership partition (administrator)
	// POST /api/v1/assets
	RegisterIP(c *gin.Context)

	// ListAssets lists registered assets
	// GET /api/v1/assets?owner=<address>&limit=<limit>&offset=<offset>
	ListAssets(c *gin.Context)

	// GetIPMetadata retrieves a registered asset
	// GET /api/v1/assets/:token_id
	GetIPMetadata(c *gin.Context)

	// GetOwner retrieves the owner at an index of the partition
	// GET /api/v1/assets/:token_id/owners/:index
	GetOwner(c *gin.Context)

	// GetOwnershipShare retrieves the share held by an account
	// GET /api/v1/assets/:token_id/shares/:address
	GetOwnershipShare(c *gin.Context)

	// GetTotalSupply retrieves the total of the asset's shares
	// GET /api/v1/assets/:token_id/supply
	GetTotalSupply(c *gin.Context)

	// DistributeRoyalties splits an amount across the asset's owners (administrator)
	// POST /api/v1/assets/:token_id/royalties
	DistributeRoyalties(c *gin.Context)

	// ListRoyaltyDistributions lists the distributions of an asset, newest first
	// GET /api/v1/assets/:token_id/royalties?limit=<limit>&offset=<offset>
	ListRoyaltyDistributions(c *gin.Context)

	// GetAccountBalance retrieves the royalties credited to an account
	// GET /api/v1/accounts/:address/balance
	GetAccountBalance(c *gin.Context)

	// CreateProposal opens a proposal on an asset (owners)
	// POST /api/v1/assets/:token_id/proposals
	CreateProposal(c *gin.Context)

	// ListProposals lists the proposals of an asset in creation order
	// GET /api/v1/assets/:token_id/proposals?limit=<limit>&offset=<offset>
	ListProposals(c *gin.Context)

	// Vote casts the caller's weighted vote (owners)
	// POST /api/v1/assets/:token_id/proposals/:proposal_id/votes
	Vote(c *gin.Context)

	// ExecuteProposal executes a proposal that passed once its voting period ended
	// POST /api/v1/assets/:token_id/proposals/:proposal_id/execute
	ExecuteProposal(c *gin.Context)

	// GetProposal retrieves a proposal with its status
	// GET /api/v1/proposals/:proposal_id
	GetProposal(c *gin.Context)

	// ResolveDispute records a dispute resolution (dispute resolver)
	// POST /api/v1/assets/:token_id/disputes
	ResolveDispute(c *gin.Context)

	// ListDisputeResolutions lists the resolutions recorded for an asset
	// GET /api/v1/assets/:token_id/disputes?limit=<limit>&offset=<offset>
	ListDisputeResolutions(c *gin.Context)

	// GetChanges pages the changes journal in ascending order by ID
	// GET /api/v1/changes?token_id=<id>&subject_type=<type>&actor=<address>&anchor=<id>&limit=<limit>
	GetChanges(c *gin.Context)

	// CreateWebhookClient creates a new webhook client (requires authentication via API key)
	// POST /api/v1/webhooks/clients
	CreateWebhookClient(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	registry registry.Registry
	store    store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, reg registry.Registry, st store.Store) Handler {
	return &handler{
		debug:    debug,
		registry: reg,
		store:    st,
	}
}

// requireCaller returns the authenticated caller or responds with 401
func requireCaller(c *gin.Context) (domain.Address, bool) {
	addr, ok := middleware.CallerFromContext(c)
	if !ok {
		respondUnauthorized(c, "Authenticated caller is required")
		return "", false
	}
	return addr, true
}

// tokenIDParam parses the :token_id path parameter or responds with 422
func tokenIDParam(c *gin.Context) (domain.TokenID, bool) {
	tokenID, err := domain.ParseTokenID(c.Param("token_id"))
	if err != nil {
		respondRegistryError(c, domain.ErrInvalidTokenID, "")
		return "", false
	}
	return tokenID, true
}

// proposalIDParam parses the :proposal_id path parameter or responds with 400
func proposalIDParam(c *gin.Context) (uint64, bool) {
	proposalID, err := parseProposalID(c.Param("proposal_id"))
	if err != nil {
		respondBadRequest(c, "Invalid proposal ID", err.Error())
		return 0, false
	}
	return proposalID, true
}

// addressParam parses an address path parameter or responds with 422
func addressParam(c *gin.Context, name string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(c.Param(name))
	if err != nil {
		respondRegistryError(c, domain.ErrInvalidAccount, "")
		return "", false
	}
	return addr, true
}

// GetRoles retrieves the registry roles
func (h *handler) GetRoles(c *gin.Context) {
	roles, err := h.registry.GetRoles(c.Request.Context())
	if err != nil {
		respondRegistryError(c, err, "Failed to get roles")
		return
	}

	c.JSON(http.StatusOK, dto.MapRolesToDTO(roles))
}

// SetDisputeResolver replaces the dispute resolver
func (h *handler) SetDisputeResolver(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.SetDisputeResolverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	resolver, err := domain.ParseAddress(req.DisputeResolver)
	if err != nil {
		respondRegistryError(c, domain.ErrInvalidAccount, "")
		return
	}

	roles, err := h.registry.SetDisputeResolver(c.Request.Context(), caller, resolver)
	if err != nil {
		respondRegistryError(c, err, "Failed to set dispute resolver")
		return
	}

	c.JSON(http.StatusOK, dto.MapRolesToDTO(roles))
}

// RegisterIP registers an asset
func (h *handler) RegisterIP(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.RegisterIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input, err := req.ToInput()
	if err != nil {
		respondRegistryError(c, err, "")
		return
	}

	asset, err := h.registry.RegisterIP(c.Request.Context(), caller, input)
	if err != nil {
		respondRegistryError(c, err, "Failed to register asset")
		return
	}

	c.JSON(http.StatusCreated, dto.MapAssetToDTO(asset))
}

// ListAssets lists registered assets
func (h *handler) ListAssets(c *gin.Context) {
	page, owner, err := ParseListAssetsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	assets, total, err := h.registry.ListAssets(c.Request.Context(), owner, page.Limit, page.Offset)
	if err != nil {
		respondRegistryError(c, err, "Failed to list assets")
		return
	}

	items := make([]dto.AssetResponse, len(assets))
	for i, a := range assets {
		items[i] = *dto.MapAssetToDTO(a)
	}

	c.JSON(http.StatusOK, dto.AssetListResponse{
		Assets: items,
		Offset: dto.NextOffset(page.Offset, len(items), total),
		Total:  total,
	})
}

// GetIPMetadata retrieves a registered asset
func (h *handler) GetIPMetadata(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	asset, err := h.registry.GetIPMetadata(c.Request.Context(), tokenID)
	if err != nil {
		respondRegistryError(c, err, "Failed to get asset")
		return
	}

	c.JSON(http.StatusOK, dto.MapAssetToDTO(asset))
}

// GetOwner retrieves the owner at an index
func (h *handler) GetOwner(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondBadRequest(c, "Invalid owner index", err.Error())
		return
	}

	owner, err := h.registry.GetOwner(c.Request.Context(), tokenID, index)
	if err != nil {
		respondRegistryError(c, err, "Failed to get owner")
		return
	}

	c.JSON(http.StatusOK, dto.OwnerResponse{
		TokenID: tokenID.String(),
		Index:   index,
		Owner:   owner.String(),
	})
}

// GetOwnershipShare retrieves the share held by an account
func (h *handler) GetOwnershipShare(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}
	owner, ok := addressParam(c, "address")
	if !ok {
		return
	}

	share, err := h.registry.GetOwnershipShare(c.Request.Context(), tokenID, owner)
	if err != nil {
		respondRegistryError(c, err, "Failed to get ownership share")
		return
	}

	c.JSON(http.StatusOK, dto.OwnershipShareResponse{
		TokenID: tokenID.String(),
		Owner:   owner.String(),
		Share:   share,
	})
}

// GetTotalSupply retrieves the total of the asset's shares
func (h *handler) GetTotalSupply(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	supply, err := h.registry.GetTotalSupply(c.Request.Context(), tokenID)
	if err != nil {
		respondRegistryError(c, err, "Failed to get total supply")
		return
	}

	c.JSON(http.StatusOK, dto.TotalSupplyResponse{
		TokenID:     tokenID.String(),
		TotalSupply: supply,
	})
}

// DistributeRoyalties splits an amount across the asset's owners
func (h *handler) DistributeRoyalties(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	var req dto.DistributeRoyaltiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		respondRegistryError(c, domain.ErrInvalidAmount, "")
		return
	}

	distribution, err := h.registry.DistributeRoyalties(c.Request.Context(), caller, tokenID, amount)
	if err != nil {
		respondRegistryError(c, err, "Failed to distribute royalties")
		return
	}

	c.JSON(http.StatusCreated, dto.MapRoyaltyDistributionToDTO(distribution))
}

// ListRoyaltyDistributions lists the distributions of an asset
func (h *handler) ListRoyaltyDistributions(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}
	page, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	distributions, total, err := h.registry.ListRoyaltyDistributions(c.Request.Context(), tokenID, page.Limit, page.Offset)
	if err != nil {
		respondRegistryError(c, err, "Failed to list royalty distributions")
		return
	}

	items := make([]dto.RoyaltyDistributionResponse, len(distributions))
	for i, d := range distributions {
		items[i] = *dto.MapRoyaltyDistributionToDTO(d)
	}

	c.JSON(http.StatusOK, dto.RoyaltyDistributionListResponse{
		Distributions: items,
		Offset:        dto.NextOffset(page.Offset, len(items), total),
		Total:         total,
	})
}

// GetAccountBalance retrieves the royalties credited to an account
func (h *handler) GetAccountBalance(c *gin.Context) {
	account, ok := addressParam(c, "address")
	if !ok {
		return
	}

	balance, err := h.registry.GetAccountBalance(c.Request.Context(), account)
	if err != nil {
		respondRegistryError(c, err, "Failed to get account balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		Account: account.String(),
		Balance: balance.String(),
	})
}

// CreateProposal opens a proposal on an asset
func (h *handler) CreateProposal(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondAPIError(c, err)
		return
	}

	proposal, err := h.registry.CreateProposal(c.Request.Context(), caller, tokenID, req.Description)
	if err != nil {
		respondRegistryError(c, err, "Failed to create proposal")
		return
	}

	c.JSON(http.StatusCreated, dto.MapProposalToDTO(proposal))
}

// ListProposals lists the proposals of an asset
func (h *handler) ListProposals(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}
	page, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	proposals, total, err := h.registry.ListProposals(c.Request.Context(), tokenID, page.Limit, page.Offset)
	if err != nil {
		respondRegistryError(c, err, "Failed to list proposals")
		return
	}

	items := make([]dto.ProposalResponse, len(proposals))
	for i, p := range proposals {
		items[i] = *dto.MapProposalToDTO(p)
	}

	c.JSON(http.StatusOK, dto.ProposalListResponse{
		Proposals: items,
		Offset:    dto.NextOffset(page.Offset, len(items), total),
		Total:     total,
	})
}

// Vote casts the caller's weighted vote
func (h *handler) Vote(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}
	proposalID, ok := proposalIDParam(c)
	if !ok {
		return
	}

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondAPIError(c, err)
		return
	}

	proposal, err := h.registry.Vote(c.Request.Context(), caller, tokenID, proposalID, *req.Support)
	if err != nil {
		respondRegistryError(c, err, "Failed to vote")
		return
	}

	c.JSON(http.StatusOK, dto.MapProposalToDTO(proposal))
}

// ExecuteProposal executes a proposal
func (h *handler) ExecuteProposal(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}
	proposalID, ok := proposalIDParam(c)
	if !ok {
		return
	}

	proposal, err := h.registry.ExecuteProposal(c.Request.Context(), caller, tokenID, proposalID)
	if err != nil {
		respondRegistryError(c, err, "Failed to execute proposal")
		return
	}

	c.JSON(http.StatusOK, dto.MapProposalToDTO(proposal))
}

// GetProposal retrieves a proposal
func (h *handler) GetProposal(c *gin.Context) {
	proposalID, ok := proposalIDParam(c)
	if !ok {
		return
	}

	proposal, err := h.registry.GetProposal(c.Request.Context(), proposalID)
	if err != nil {
		respondRegistryError(c, err, "Failed to get proposal")
		return
	}

	c.JSON(http.StatusOK, dto.MapProposalToDTO(proposal))
}

// ResolveDispute records a dispute resolution
func (h *handler) ResolveDispute(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}

	var req dto.ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondAPIError(c, err)
		return
	}

	resolution, err := h.registry.ResolveDispute(c.Request.Context(), caller, tokenID, req.Resolution)
	if err != nil {
		respondRegistryError(c, err, "Failed to resolve dispute")
		return
	}

	c.JSON(http.StatusCreated, dto.MapDisputeResolutionToDTO(resolution))
}

// ListDisputeResolutions lists the resolutions recorded for an asset
func (h *handler) ListDisputeResolutions(c *gin.Context) {
	tokenID, ok := tokenIDParam(c)
	if !ok {
		return
	}
	page, err := ParsePaginationQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resolutions, total, err := h.registry.ListDisputeResolutions(c.Request.Context(), tokenID, page.Limit, page.Offset)
	if err != nil {
		respondRegistryError(c, err, "Failed to list dispute resolutions")
		return
	}

	items := make([]dto.DisputeResolutionResponse, len(resolutions))
	for i, r := range resolutions {
		items[i] = *dto.MapDisputeResolutionToDTO(r)
	}

	c.JSON(http.StatusOK, dto.DisputeResolutionListResponse{
		Resolutions: items,
		Offset:      dto.NextOffset(page.Offset, len(items), total),
		Total:       total,
	})
}

// GetChanges pages the changes journal
func (h *handler) GetChanges(c *gin.Context) {
	filter, err := ParseGetChangesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	changes, total, err := h.registry.GetChanges(c.Request.Context(), *filter)
	if err != nil {
		respondRegistryError(c, err, "Failed to get changes")
		return
	}

	items := make([]dto.ChangeResponse, len(changes))
	for i, change := range changes {
		items[i] = *dto.MapChangeToDTO(change)
	}

	// A full page means there may be more entries after the last one
	var nextAnchor *uint64
	if len(changes) > 0 && len(changes) == filter.Limit {
		last := changes[len(changes)-1].ID
		nextAnchor = &last
	}

	c.JSON(http.StatusOK, dto.ChangeListResponse{
		Changes:    items,
		NextAnchor: nextAnchor,
		Total:      total,
	})
}

// CreateWebhookClient creates a new webhook client (requires authentication via API key)
func (h *handler) CreateWebhookClient(c *gin.Context) {
	var req dto.CreateWebhookClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(h.debug); err != nil {
		respondAPIError(c, err)
		return
	}

	// Set default retry_max_attempts if not provided
	retryMaxAttempts := constants.DEFAULT_RETRY_MAX_ATTEMPTS
	if req.RetryMaxAttempts != nil {
		retryMaxAttempts = *req.RetryMaxAttempts
	}

	clientID, err := internalTypes.GenerateUUID()
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}
	secret, err := internalTypes.GenerateSecureToken(32)
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}
	filters, err := json.Marshal(req.EventFilters)
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}

	client, err := h.store.CreateWebhookClient(c.Request.Context(), store.CreateWebhookClientInput{
		ClientID:         clientID,
		WebhookURL:       req.WebhookURL,
		WebhookSecret:    secret,
		EventFilters:     filters,
		IsActive:         true,
		RetryMaxAttempts: retryMaxAttempts,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client", zap.String("webhookURL", req.WebhookURL))
		return
	}

	logger.InfoCtx(c.Request.Context(), "Webhook client created",
		zap.String("clientID", client.ClientID),
		zap.Strings("eventFilters", req.EventFilters))

	c.JSON(http.StatusCreated, dto.CreateWebhookClientResponse{
		ClientID:         client.ClientID,
		WebhookURL:       client.WebhookURL,
		WebhookSecret:    client.WebhookSecret,
		EventFilters:     req.EventFilters,
		IsActive:         client.IsActive,
		RetryMaxAttempts: client.RetryMaxAttempts,
		CreatedAt:        client.CreatedAt,
		UpdatedAt:        client.UpdatedAt,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-ip-registry-api",
	})
}
