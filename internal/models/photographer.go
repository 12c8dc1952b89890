package models

import (
	"strings"

	"gorm.io/gorm"
)

// Photographer is the global identity of a photographer. The per-race
// numbers live in RacePhotographer.
type Photographer struct {
	DefaultModel
	Name string `json:"name"`

	// Contact and billing metadata
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
	TaxID       string `json:"taxId"`      // CUIT
	NationalID  string `json:"nationalId"` // DNI
	BankAccount string `json:"bankAccount"`
	BankAlias   string `json:"bankAlias"`
	BillingType string `json:"billingType"`
	Notes       string `json:"notes"`
}

func (p *Photographer) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}
