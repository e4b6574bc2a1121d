package query

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/riskbases/riskbases/dao/model"
)

// Migrate applies the versioned schema migrations and seeds the read-only
// module catalog. Safe to run on every boot.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "202506010001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&model.User{},
					&model.Workspace{},
					&model.WorkspaceMember{},
					&model.Module{},
					&model.IntakeFieldDefinition{},
					&model.RiskTemplate{},
					&model.Project{},
					&model.IntakeValue{},
					&model.Stakeholder{},
					&model.Permit{},
					&model.Risk{},
					&model.Action{},
					&model.ProjectIntegration{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"project_integrations", "actions", "risks", "permits",
					"stakeholders", "intake_values", "projects",
					"risk_templates", "intake_field_definitions", "modules",
					"workspace_members", "workspaces", "users",
				)
			},
		},
		{
			ID:      "202506010002_seed_module_catalog",
			Migrate: seedModuleCatalog,
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DELETE FROM risk_templates; DELETE FROM intake_field_definitions; DELETE FROM modules").Error
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return err
	}
	klog.Info("database migrations applied")
	return nil
}

func strPtr(s string) *string { return &s }

// seedModuleCatalog inserts the sector templates, their intake form fields
// and their default risk registers. The catalog is read-only at runtime.
func seedModuleCatalog(tx *gorm.DB) error {
	type riskSeed struct {
		category    string
		title       string
		description string
		probability int
		impact      int
	}
	type moduleSeed struct {
		module model.Module
		fields []model.IntakeFieldDefinition
		risks  []riskSeed
	}

	seeds := []moduleSeed{
		{
			module: model.Module{
				Key:         "construction",
				Name:        "Construction",
				Description: strPtr("Residential and commercial construction projects"),
			},
			fields: []model.IntakeFieldDefinition{
				{FieldKey: "site_address", Label: "Site address", FieldType: model.FieldText, Required: true, SortOrder: 1},
				{FieldKey: "contract_value_eur", Label: "Contract value (EUR)", FieldType: model.FieldNumber, Required: true, SortOrder: 2},
				{FieldKey: "contract_type", Label: "Contract type", FieldType: model.FieldSelect, Required: true, SortOrder: 3,
					Options: datatypes.JSON(`["UAV", "UAV-GC", "Design & Build", "Bouwteam"]`)},
				{FieldKey: "permit_authority", Label: "Permit authority", FieldType: model.FieldText, Required: false, SortOrder: 4},
				{FieldKey: "has_neighbours", Label: "Adjacent occupied buildings", FieldType: model.FieldBoolean, Required: false, SortOrder: 5},
				{FieldKey: "scope_summary", Label: "Scope summary", FieldType: model.FieldTextarea, Required: false, SortOrder: 6},
			},
			risks: []riskSeed{
				{"permits", "Environmental permit delayed", "The omgevingsvergunning is granted later than planned.", 3, 4},
				{"site", "Unexpected soil contamination", "Contaminated ground discovered during excavation.", 2, 5},
				{"supply", "Long lead times for structural steel", "Steel deliveries slip beyond the construction schedule.", 3, 3},
				{"stakeholders", "Objections from neighbours", "Formal objections suspend the permit procedure.", 3, 4},
				{"finance", "Indexation exceeds budget", "Price indexation of materials exceeds the risk reserve.", 4, 3},
			},
		},
		{
			module: model.Module{
				Key:         "infrastructure",
				Name:        "Infrastructure",
				Description: strPtr("Civil and utility infrastructure projects"),
			},
			fields: []model.IntakeFieldDefinition{
				{FieldKey: "corridor", Label: "Corridor / location", FieldType: model.FieldText, Required: true, SortOrder: 1},
				{FieldKey: "client_type", Label: "Client type", FieldType: model.FieldSelect, Required: true, SortOrder: 2,
					Options: datatypes.JSON(`["Rijkswaterstaat", "Province", "Municipality", "Water authority", "Private"]`)},
				{FieldKey: "execution_start", Label: "Planned execution start", FieldType: model.FieldDate, Required: false, SortOrder: 3},
				{FieldKey: "cable_and_pipe_survey", Label: "Cable and pipe survey done", FieldType: model.FieldBoolean, Required: false, SortOrder: 4},
				{FieldKey: "scope_summary", Label: "Scope summary", FieldType: model.FieldTextarea, Required: false, SortOrder: 5},
			},
			risks: []riskSeed{
				{"underground", "Unknown cables and pipes", "KLIC data is incomplete; strikes during excavation.", 3, 4},
				{"traffic", "Traffic management rejected", "The road authority rejects the phasing plan.", 2, 4},
				{"environment", "Nitrogen deposition limits", "Nitrogen rulings restrict equipment deployment.", 3, 5},
				{"supply", "Limited availability of specialist crews", "Specialist subcontractors are not available in the window.", 3, 3},
			},
		},
	}

	for i := range seeds {
		seed := &seeds[i]
		if err := tx.Create(&seed.module).Error; err != nil {
			return err
		}
		for j := range seed.fields {
			seed.fields[j].ModuleID = seed.module.ID
		}
		if err := tx.Create(&seed.fields).Error; err != nil {
			return err
		}
		templates := make([]model.RiskTemplate, 0, len(seed.risks))
		for _, r := range seed.risks {
			templates = append(templates, model.RiskTemplate{
				ModuleID:    seed.module.ID,
				CategoryKey: r.category,
				Title:       r.title,
				Description: strPtr(r.description),
				Probability: r.probability,
				Impact:      r.impact,
			})
		}
		if err := tx.Create(&templates).Error; err != nil {
			return err
		}
	}
	return nil
}
