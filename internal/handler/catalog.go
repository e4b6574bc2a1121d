package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/riskbases/riskbases/dao/model"
	"github.com/riskbases/riskbases/internal/resputil"
	"github.com/riskbases/riskbases/pkg/csvimport"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewCatalogMgr)
}

// CatalogMgr serves the seeded, read-only module catalog that drives the
// setup wizard.
type CatalogMgr struct {
	name string
	db   *gorm.DB
}

func NewCatalogMgr(conf *RegisterConfig) Manager {
	return &CatalogMgr{
		name: "modules",
		db:   conf.DB,
	}
}

func (mgr *CatalogMgr) GetName() string { return mgr.name }

func (mgr *CatalogMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CatalogMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("", mgr.List)
	g.GET("/csv-template", mgr.CSVTemplate)
	g.GET("/:key/intake-fields", mgr.ListIntakeFields)
	g.GET("/:key/risk-templates", mgr.ListRiskTemplates)
}

func (mgr *CatalogMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type ModuleKeyReq struct {
	Key string `uri:"key" binding:"required"`
}

func (mgr *CatalogMgr) getModule(c *gin.Context) (*model.Module, bool) {
	var req ModuleKeyReq
	if err := c.ShouldBindUri(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return nil, false
	}
	var module model.Module
	err := mgr.db.WithContext(c).Where("key = ?", req.Key).First(&module).Error
	if err != nil {
		resputil.HTTPError(c, 404, "Module not found", resputil.NotFound)
		return nil, false
	}
	return &module, true
}

// List godoc
// @Summary List the available sector modules
// @Tags Catalog
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]model.Module] "modules"
// @Router /v1/modules [get]
func (mgr *CatalogMgr) List(c *gin.Context) {
	var modules []model.Module
	if err := mgr.db.WithContext(c).Order("id").Find(&modules).Error; err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, modules)
}

// ListIntakeFields godoc
// @Summary List the intake form fields of a module
// @Tags Catalog
// @Produce json
// @Security Bearer
// @Param key path string true "module key"
// @Success 200 {object} resputil.Response[[]model.IntakeFieldDefinition] "field definitions"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/modules/{key}/intake-fields [get]
func (mgr *CatalogMgr) ListIntakeFields(c *gin.Context) {
	module, ok := mgr.getModule(c)
	if !ok {
		return
	}
	var fields []model.IntakeFieldDefinition
	err := mgr.db.WithContext(c).
		Where("module_id = ?", module.ID).
		Order("sort_order, id").
		Find(&fields).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, fields)
}

// ListRiskTemplates godoc
// @Summary List the catalog risks of a module
// @Tags Catalog
// @Produce json
// @Security Bearer
// @Param key path string true "module key"
// @Success 200 {object} resputil.Response[[]model.RiskTemplate] "risk templates"
// @Failure 404 {object} resputil.Response[any] "not found"
// @Router /v1/modules/{key}/risk-templates [get]
func (mgr *CatalogMgr) ListRiskTemplates(c *gin.Context) {
	module, ok := mgr.getModule(c)
	if !ok {
		return
	}
	var templates []model.RiskTemplate
	err := mgr.db.WithContext(c).
		Where("module_id = ?", module.ID).
		Order("category_key, id").
		Find(&templates).Error
	if err != nil {
		resputil.Error(c, err.Error(), resputil.NotSpecified)
		return
	}
	resputil.Success(c, templates)
}

// CSVTemplate godoc
// @Summary Download the example CSV for the import route
// @Tags Catalog
// @Produce text/csv
// @Security Bearer
// @Success 200 {string} string "CSV file"
// @Router /v1/modules/csv-template [get]
func (mgr *CatalogMgr) CSVTemplate(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename="+csvimport.TemplateFileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvimport.Template()))
}
