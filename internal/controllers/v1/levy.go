package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kommunalcrm/treasury/internal/httputil"
	"github.com/kommunalcrm/treasury/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterLevyRoutes registers the routes for mandate levies with
// the RouterGroup that is passed.
func RegisterLevyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsLevies)
		r.GET("", GetLevies)
		r.POST("", CreateLevies)
	}

	// Levy with ID
	{
		r.OPTIONS("/:id", OptionsLevyDetail)
		r.GET("/:id", GetLevy)
		r.PATCH("/:id", UpdateLevy)
		r.DELETE("/:id", DeleteLevy)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Levies
// @Success		204
// @Router			/v1/levies [options]
func OptionsLevies(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Levies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/levies/{id} [options]
func OptionsLevyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.MandateLevy{})
}

// @Summary		Create mandate levies
// @Description	Creates mandate levies from the list of submitted levy data. The final levy is computed from the gross income, rate and deductions. The response code is the highest response code number that a single levy creation would have caused. If it is not equal to 201, at least one levy has an error.
// @Tags			Levies
// @Accept			json
// @Produce		json
// @Success		201		{object}	LevyCreateResponse
// @Failure		400		{object}	LevyCreateResponse
// @Failure		500		{object}	LevyCreateResponse
// @Param			levies	body		[]LevyEditable	true	"Mandate levies"
// @Router			/v1/levies [post]
func CreateLevies(c *gin.Context) {
	var editables []LevyEditable

	if err := httputil.BindData(c, &editables); err != nil {
		e := err.Error()
		c.JSON(status(err), LevyCreateResponse{
			Error: &e,
		})
		return
	}

	status := http.StatusCreated
	r := LevyCreateResponse{}

	for _, editable := range editables {
		levy := editable.model()
		err := models.DB.Create(&levy).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newLevy(c, levy)
		r.Data = append(r.Data, LevyResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get mandate levies
// @Description	Returns a list of mandate levies, ordered by month
// @Tags			Levies
// @Produce		json
// @Success		200	{object}	LevyListResponse
// @Failure		400	{object}	LevyListResponse
// @Failure		500	{object}	LevyListResponse
// @Router			/v1/levies [get]
// @Param			organization	query	string	false	"Filter by organization"
// @Param			contact			query	string	false	"Filter by mandate holder"
// @Param			status			query	string	false	"Filter by payment status"
// @Param			month			query	string	false	"Filter by month, in YYYY-MM format"
// @Param			year			query	int		false	"Filter by year"
// @Param			offset			query	uint	false	"The offset of the first levy returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of levies to return. Defaults to 50."
func GetLevies(c *gin.Context) {
	var filter LevyQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, LevyListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.
		Order("datetime(mandate_levies.period_month) ASC, mandate_levies.contact ASC").
		Where(&model, queryFields...)

	if !filter.Month.IsZero() {
		q = q.Where("date(mandate_levies.period_month) = date(?)", filter.Month.Start())
	}

	if filter.Year != 0 {
		q = q.Where("strftime('%Y', mandate_levies.period_month) = ?", fmt.Sprintf("%04d", filter.Year))
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var levies []models.MandateLevy
	err := q.Find(&levies).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Levy, 0)
	for _, levy := range levies {
		data = append(data, newLevy(c, levy))
	}

	c.JSON(http.StatusOK, LevyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get mandate levy
// @Description	Returns a specific mandate levy
// @Tags			Levies
// @Produce		json
// @Success		200	{object}	LevyResponse
// @Failure		400	{object}	LevyResponse
// @Failure		404	{object}	LevyResponse
// @Failure		500	{object}	LevyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/levies/{id} [get]
func GetLevy(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyResponse{
			Error: &e,
		})
		return
	}

	var levy models.MandateLevy
	err = models.DB.First(&levy, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyResponse{
			Error: &e,
		})
		return
	}

	data := newLevy(c, levy)
	c.JSON(http.StatusOK, LevyResponse{Data: &data})
}

// @Summary		Update mandate levy
// @Description	Updates an existing mandate levy. Only values to be updated need to be specified. The final levy is recomputed.
// @Tags			Levies
// @Accept			json
// @Produce		json
// @Success		200		{object}	LevyResponse
// @Failure		400		{object}	LevyResponse
// @Failure		404		{object}	LevyResponse
// @Failure		500		{object}	LevyResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			levy	body		LevyEditable	true	"Mandate levy"
// @Router			/v1/levies/{id} [patch]
func UpdateLevy(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyResponse{
			Error: &e,
		})
		return
	}

	var levy models.MandateLevy
	err = models.DB.First(&levy, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyResponse{
			Error: &e,
		})
		return
	}

	update := newLevyEditable(levy)
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyResponse{
			Error: &e,
		})
		return
	}

	updated := update.model()
	updated.DefaultModel = levy.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LevyResponse{
			Error: &e,
		})
		return
	}

	data := newLevy(c, updated)
	c.JSON(http.StatusOK, LevyResponse{Data: &data})
}

// @Summary		Delete mandate levy
// @Description	Deletes a mandate levy
// @Tags			Levies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/levies/{id} [delete]
func DeleteLevy(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var levy models.MandateLevy
	err = models.DB.First(&levy, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&levy).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
