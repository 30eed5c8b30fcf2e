package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/kommunalcrm/treasury/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestModelTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	model := models.DefaultModel{
		Timestamps: models.Timestamps{
			CreatedAt: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
			UpdatedAt: time.Date(2001, 2, 3, 4, 5, 6, 7, tz),
			DeletedAt: &gorm.DeletedAt{Time: time.Now().In(tz)},
		},
	}

	err := model.AfterFind(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "model.AfterFind failed")
	}

	assert.Equal(suite.T(), time.UTC, model.CreatedAt.Location(), "Timezone for model is not UTC")
	assert.Equal(suite.T(), time.UTC, model.UpdatedAt.Location(), "Timezone for model is not UTC")
	assert.Equal(suite.T(), time.UTC, model.DeletedAt.Time.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestModelKeepsPresetID() {
	id := uuid.New()
	override := suite.createTestOverride(models.PlanOverride{
		DefaultModel: models.DefaultModel{ID: id},
		Organization: "Ortsverband Nord",
		Kind:         models.KindExpense,
		Category:     models.CategoryRent,
	})

	assert.Equal(suite.T(), id, override.ID)
}

func (suite *TestSuiteStandard) TestModelGeneratesID() {
	override := suite.createTestOverride(models.PlanOverride{
		Organization: "Ortsverband Nord",
		Kind:         models.KindExpense,
		Category:     models.CategoryRent,
	})

	assert.NotEqual(suite.T(), uuid.Nil, override.ID)
}
