package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterOverrideRoutes registers the routes for plan overrides with
// the RouterGroup that is passed.
func RegisterOverrideRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsOverrides)
		r.GET("", GetOverrides)
		r.POST("", CreateOverrides)
	}

	// Override with ID
	{
		r.OPTIONS("/:id", OptionsOverrideDetail)
		r.GET("/:id", GetOverride)
		r.PATCH("/:id", UpdateOverride)
		r.DELETE("/:id", DeleteOverride)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overrides
// @Success		204
// @Router			/v1/overrides [options]
func OptionsOverrides(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overrides
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/overrides/{id} [options]
func OptionsOverrideDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.PlanOverride{})
}

// @Summary		Create plan overrides
// @Description	Creates plan overrides from the list of submitted override data. There can only be one override per organization, kind and category. The response code is the highest response code number that a single override creation would have caused. If it is not equal to 201, at least one override has an error.
// @Tags			Overrides
// @Accept			json
// @Produce		json
// @Success		201		{object}	OverrideCreateResponse
// @Failure		400		{object}	OverrideCreateResponse
// @Failure		500		{object}	OverrideCreateResponse
// @Param			overrides	body		[]OverrideEditable	true	"Plan overrides"
// @Router			/v1/overrides [post]
func CreateOverrides(c *gin.Context) {
	var editables []OverrideEditable

	if err := httputil.BindData(c, &editables); err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := OverrideCreateResponse{}

	for _, editable := range editables {
		override := editable.model()
		err := models.DB.Create(&override).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newOverride(c, override)
		r.Data = append(r.Data, OverrideResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get plan overrides
// @Description	Returns a list of plan overrides, ordered by kind and category
// @Tags			Overrides
// @Produce		json
// @Success		200	{object}	OverrideListResponse
// @Failure		400	{object}	OverrideListResponse
// @Failure		500	{object}	OverrideListResponse
// @Router			/v1/overrides [get]
// @Param			organization	query	string	false	"Filter by organization"
// @Param			kind			query	string	false	"Filter by kind"
// @Param			category		query	string	false	"Filter by category"
// @Param			offset			query	uint	false	"The offset of the first override returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of overrides to return. Defaults to 50."
func GetOverrides(c *gin.Context) {
	var filter OverrideQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, OverrideListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.
		Order("plan_overrides.kind ASC, plan_overrides.category ASC").
		Where(&model, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var overrides []models.PlanOverride
	err := q.Find(&overrides).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Override, 0)
	for _, override := range overrides {
		data = append(data, newOverride(c, override))
	}

	c.JSON(http.StatusOK, OverrideListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get plan override
// @Description	Returns a specific plan override
// @Tags			Overrides
// @Produce		json
// @Success		200	{object}	OverrideResponse
// @Failure		400	{object}	OverrideResponse
// @Failure		404	{object}	OverrideResponse
// @Failure		500	{object}	OverrideResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/overrides/{id} [get]
func GetOverride(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &e,
		})
		return
	}

	var override models.PlanOverride
	err = models.DB.First(&override, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &e,
		})
		return
	}

	data := newOverride(c, override)
	c.JSON(http.StatusOK, OverrideResponse{Data: &data})
}

// @Summary		Update plan override
// @Description	Updates an existing plan override. Only values to be updated need to be specified.
// @Tags			Overrides
// @Accept			json
// @Produce		json
// @Success		200		{object}	OverrideResponse
// @Failure		400		{object}	OverrideResponse
// @Failure		404		{object}	OverrideResponse
// @Failure		500		{object}	OverrideResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			override	body		OverrideEditable	true	"Plan override"
// @Router			/v1/overrides/{id} [patch]
func UpdateOverride(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &e,
		})
		return
	}

	var override models.PlanOverride
	err = models.DB.First(&override, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &e,
		})
		return
	}

	update := newOverrideEditable(override)
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &e,
		})
		return
	}

	updated := update.model()
	updated.DefaultModel = override.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverrideResponse{
			Error: &e,
		})
		return
	}

	data := newOverride(c, updated)
	c.JSON(http.StatusOK, OverrideResponse{Data: &data})
}

// @Summary		Delete plan override
// @Description	Deletes a plan override. Afterwards, the plan for the category falls back to budgets and history again.
// @Tags			Overrides
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/overrides/{id} [delete]
func DeleteOverride(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var override models.PlanOverride
	err = models.DB.First(&override, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Overrides are deleted permanently so that they can be set again
	err = models.DB.Unscoped().Delete(&override).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
