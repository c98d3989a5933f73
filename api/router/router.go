package router

import (
	"github.com/gin-gonic/gin"

	"lexstyle/api/handler"
	"lexstyle/api/response"
)

// TenantContext copies the identity headers the upstream auth gateway injects
// into the request context. Requests without a tenant are rejected.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			response.Fail(c, "missing X-Tenant-ID")
			c.Abort()
			return
		}
		c.Set("tenant_id", tenantID)
		c.Set("user_id", c.GetHeader("X-User-ID"))
		c.Next()
	}
}

func RegisterRoutes(r *gin.Engine, aiH *handler.AIHandler) {
	api := r.Group("/api/v1", TenantContext())
	{
		ai := api.Group("/ai")
		{
			ai.POST("/training-docs", aiH.UploadTrainingDocs)
			ai.GET("/training-docs", aiH.ListTrainingDocs)
			ai.DELETE("/training-docs/:id", aiH.DeleteTrainingDoc)

			ai.POST("/style-profile-master", aiH.SynthesizeProfile)
			ai.PUT("/style-profile-master/manual", aiH.SetManualProfile)
			ai.GET("/style-profile-master", aiH.GetActiveProfile)

			ai.POST("/contract-preview", aiH.PreviewContract)
			ai.POST("/contract-generate-with-style", aiH.GenerateContract)
			ai.POST("/contract-clause", aiH.GenerateClause)
			ai.POST("/contract-refine", aiH.RefineContract)
			ai.POST("/contract-improve", aiH.ImproveContract)
		}
	}
}
