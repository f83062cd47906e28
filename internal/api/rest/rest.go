package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/api/middleware"
)

// SetupRoutes configures all REST API routes.
// Reads are public; every state change requires an authenticated caller that is not denied.
// afterAuth runs on authenticated routes once the caller is known.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, denylist access.Denylist, afterAuth ...gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	authenticated := append([]gin.HandlerFunc{middleware.Auth(authCfg), middleware.Denylist(denylist)}, afterAuth...)
	withAuth := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, authenticated...), h)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Roles
		v1.GET("/roles", handler.GetRoles)
		v1.PUT("/roles/dispute-resolver", withAuth(handler.SetDisputeResolver)...)

		// Asset ledger
		v1.POST("/assets", withAuth(handler.RegisterIP)...)
		v1.GET("/assets", handler.ListAssets)
		v1.GET("/assets/:token_id", handler.GetIPMetadata)
		v1.GET("/assets/:token_id/owners/:index", handler.GetOwner)
		v1.GET("/assets/:token_id/shares/:address", handler.GetOwnershipShare)
		v1.GET("/assets/:token_id/supply", handler.GetTotalSupply)

		// Royalties
		v1.POST("/assets/:token_id/royalties", withAuth(handler.DistributeRoyalties)...)
		v1.GET("/assets/:token_id/royalties", handler.ListRoyaltyDistributions)
		v1.GET("/accounts/:address/balance", handler.GetAccountBalance)

		// Governance
		v1.POST("/assets/:token_id/proposals", withAuth(handler.CreateProposal)...)
		v1.GET("/assets/:token_id/proposals", handler.ListProposals)
		v1.POST("/assets/:token_id/proposals/:proposal_id/votes", withAuth(handler.Vote)...)
		v1.POST("/assets/:token_id/proposals/:proposal_id/execute", withAuth(handler.ExecuteProposal)...)
		v1.GET("/proposals/:proposal_id", handler.GetProposal)

		// Disputes
		v1.POST("/assets/:token_id/disputes", withAuth(handler.ResolveDispute)...)
		v1.GET("/assets/:token_id/disputes", handler.ListDisputeResolutions)

		// Changes journal (public read access)
		v1.GET("/changes", handler.GetChanges)

		// Webhook endpoints (requires API key authentication only)
		v1.POST("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.CreateWebhookClient)
	}
}
