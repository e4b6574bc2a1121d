package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Project{}))
	return db
}

func TestCompleteSetupTransitionsExactlyOnce(t *testing.T) {
	db := newHandlerTestDB(t)

	project := model.Project{
		WorkspaceID: 1,
		ModuleID:    1,
		Name:        "Kadeconstructie Zuid",
		Status:      model.ProjectDraft,
		SetupStatus: model.SetupInProgress,
		IngestType:  model.IngestManual,
	}
	require.NoError(t, db.Create(&project).Error)

	require.NoError(t, completeSetup(db, project.ID))

	var got model.Project
	require.NoError(t, db.First(&got, project.ID).Error)
	assert.Equal(t, model.SetupCompleted, got.SetupStatus)
	assert.Equal(t, model.ProjectActive, got.Status)

	// the guarded predicate makes a second transition impossible
	assert.ErrorIs(t, completeSetup(db, project.ID), gorm.ErrRecordNotFound)

	require.NoError(t, db.First(&got, project.ID).Error)
	assert.Equal(t, model.SetupCompleted, got.SetupStatus)
	assert.Equal(t, model.ProjectActive, got.Status)
}

func TestCompleteSetupUnknownProject(t *testing.T) {
	db := newHandlerTestDB(t)
	assert.ErrorIs(t, completeSetup(db, 999), gorm.ErrRecordNotFound)
}
