package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type plansFile struct {
	Plans []planEntry `yaml:"plans"`
}

type planEntry struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	PricePerMonth string `yaml:"price_per_month"`
	Currency      string `yaml:"currency"`
	IsActive      *bool  `yaml:"is_active"`
	MaxProjects   *int   `yaml:"max_projects"`
	MaxTasks      *int   `yaml:"max_tasks"`
	MaxMembers    *int   `yaml:"max_members"`
}

// loadPlansFromYAML reads a plan catalog. Omitted limits mean unlimited and
// plans are active unless is_active is false.
func loadPlansFromYAML(path string) ([]model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plans file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var file plansFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal plans yaml: %w", err)
	}

	plans := make([]model.Plan, 0, len(file.Plans))
	for i, entry := range file.Plans {
		if entry.Name == "" {
			return nil, fmt.Errorf("plans[%d]: name is required", i)
		}

		price := decimal.Zero
		if entry.PricePerMonth != "" {
			price, err = decimal.NewFromString(entry.PricePerMonth)
			if err != nil {
				return nil, fmt.Errorf("plans[%d]: invalid price_per_month %q: %w", i, entry.PricePerMonth, err)
			}
		}

		isActive := true
		if entry.IsActive != nil {
			isActive = *entry.IsActive
		}

		plan := model.Plan{
			Name:          entry.Name,
			PricePerMonth: price,
			Currency:      entry.Currency,
			IsActive:      isActive,
			MaxProjects:   entry.MaxProjects,
			MaxTasks:      entry.MaxTasks,
			MaxMembers:    entry.MaxMembers,
		}
		if entry.Description != "" {
			description := entry.Description
			plan.Description = &description
		}

		plans = append(plans, plan)
	}

	return plans, nil
}
