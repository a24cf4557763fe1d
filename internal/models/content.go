package models

import "time"

var ServiceCategories = []string{"savings", "loan", "remittance", "insurance", "other"}

// ServiceOffering is a product line shown on the services/pricing page.
type ServiceOffering struct {
	ID           string    `firestore:"id" json:"id"`
	Name         string    `firestore:"name" json:"name"`
	Description  string    `firestore:"description" json:"description"`
	Category     string    `firestore:"category" json:"category"`
	InterestRate float64   `firestore:"interestRate" json:"interestRate"`
	Features     []string  `firestore:"features" json:"features"`
	IsActive     bool      `firestore:"isActive" json:"isActive"`
	Order        int       `firestore:"order" json:"order"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type AboutContent struct {
	Mission   string      `firestore:"mission" json:"mission"`
	Vision    string      `firestore:"vision" json:"vision"`
	History   string      `firestore:"history" json:"history"`
	Values    []string    `firestore:"values" json:"values"`
	Image     *Attachment `firestore:"image,omitempty" json:"image,omitempty"`
	UpdatedAt time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

type Business struct {
	ID          string      `firestore:"id" json:"id"`
	Name        string      `firestore:"name" json:"name"`
	Category    string      `firestore:"category" json:"category"`
	Description string      `firestore:"description" json:"description"`
	Owner       string      `firestore:"owner,omitempty" json:"owner,omitempty"`
	Address     string      `firestore:"address,omitempty" json:"address,omitempty"`
	Phone       string      `firestore:"phone,omitempty" json:"phone,omitempty"`
	Email       string      `firestore:"email,omitempty" json:"email,omitempty"`
	Website     string      `firestore:"website,omitempty" json:"website,omitempty"`
	Logo        *Attachment `firestore:"logo,omitempty" json:"logo,omitempty"`
	Featured    bool        `firestore:"featured" json:"featured"`
	IsActive    bool        `firestore:"isActive" json:"isActive"`
	CreatedAt   time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `firestore:"updatedAt" json:"updatedAt"`
}

type Product struct {
	ID          string      `firestore:"id" json:"id"`
	BusinessID  string      `firestore:"businessId" json:"businessId"`
	Name        string      `firestore:"name" json:"name"`
	Description string      `firestore:"description" json:"description"`
	Price       float64     `firestore:"price" json:"price"`
	Image       *Attachment `firestore:"image,omitempty" json:"image,omitempty"`
	IsAvailable bool        `firestore:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time   `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `firestore:"updatedAt" json:"updatedAt"`
}
