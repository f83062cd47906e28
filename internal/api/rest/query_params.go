package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ip-registry/internal/api/shared/constants"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/store"
	"github.com/feral-file/ff-ip-registry/internal/store/schema"
)

// PaginationQueryParams holds offset pagination query parameters
type PaginationQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// Validate checks the page bounds
func (p *PaginationQueryParams) Validate() error {
	if p.Limit < 1 || p.Limit > constants.MAX_PAGE_SIZE {
		return fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
	}
	return nil
}

// ListAssetsQueryParams holds query parameters for GET /assets
type ListAssetsQueryParams struct {
	PaginationQueryParams
	Owner string `form:"owner"`
}

// GetChangesQueryParams holds query parameters for GET /changes
type GetChangesQueryParams struct {
	TokenIDs     []string `form:"token_id"`
	SubjectTypes []string `form:"subject_type"`
	Actors       []string `form:"actor"`
	Anchor       *uint64  `form:"anchor"`
	Limit        int      `form:"limit,default=50"`
}

// ParsePaginationQuery parses and validates pagination query parameters
func ParsePaginationQuery(c *gin.Context) (*PaginationQueryParams, error) {
	params := PaginationQueryParams{Limit: constants.DEFAULT_PAGE_LIMIT}
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &params, nil
}

// ParseListAssetsQuery parses query parameters for GET /assets
func ParseListAssetsQuery(c *gin.Context) (*PaginationQueryParams, *domain.Address, error) {
	var params ListAssetsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}

	if params.Owner == "" {
		return &params.PaginationQueryParams, nil, nil
	}
	owner, err := domain.ParseAddress(params.Owner)
	if err != nil {
		return nil, nil, err
	}
	return &params.PaginationQueryParams, &owner, nil
}

// ParseGetChangesQuery parses query parameters for GET /changes into a journal filter
func ParseGetChangesQuery(c *gin.Context) (*store.ChangesQueryFilter, error) {
	var params GetChangesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit < 1 || params.Limit > constants.MAX_PAGE_SIZE {
		return nil, fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
	}

	filter := &store.ChangesQueryFilter{
		Anchor: params.Anchor,
		Limit:  params.Limit,
	}

	for _, raw := range params.TokenIDs {
		tokenID, err := domain.ParseTokenID(raw)
		if err != nil {
			return nil, err
		}
		filter.TokenIDs = append(filter.TokenIDs, tokenID)
	}

	for _, raw := range params.SubjectTypes {
		subjectType := schema.SubjectType(raw)
		switch subjectType {
		case schema.SubjectTypeAsset, schema.SubjectTypeLicense, schema.SubjectTypeRoyalty,
			schema.SubjectTypeProposal, schema.SubjectTypeVote, schema.SubjectTypeDispute, schema.SubjectTypeRole:
			filter.SubjectTypes = append(filter.SubjectTypes, subjectType)
		default:
			return nil, fmt.Errorf("unsupported subject_type: %s", raw)
		}
	}

	actors, err := domain.ParseAddresses(params.Actors)
	if err != nil {
		return nil, err
	}
	if len(actors) > 0 {
		filter.Actors = actors
	}

	return filter, nil
}

// parseProposalID parses a proposal id path parameter
func parseProposalID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid proposal id: %q", raw)
	}
	return id, nil
}
