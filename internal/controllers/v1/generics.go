package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
//
// Note: This function only works for resources with an ID, not for calculated endpoints (like /forecast)
func resourceOptionsDetail[R models.Transaction | models.Budget | models.MandateLevy | models.PlanOverride](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
