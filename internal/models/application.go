package models

import "time"

const (
	StatusPending     = "pending"
	StatusUnderReview = "under-review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

var ApplicationStatuses = []string{StatusPending, StatusUnderReview, StatusApproved, StatusRejected}

var AccountTypes = []string{"saving", "current", "fixed"}

var LoanTypes = []string{"personal", "business", "education", "home", "vehicle", "agriculture"}

// ApplicantDetails is shared by account-opening and loan applications.
type ApplicantDetails struct {
	FullName          string `firestore:"fullName" json:"fullName"`
	Email             string `firestore:"email" json:"email"`
	Phone             string `firestore:"phone" json:"phone"`
	DateOfBirth       string `firestore:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender            string `firestore:"gender,omitempty" json:"gender,omitempty"`
	Address           string `firestore:"address" json:"address"`
	CitizenshipNumber string `firestore:"citizenshipNumber" json:"citizenshipNumber"` // encrypted at rest
	Occupation        string `firestore:"occupation,omitempty" json:"occupation,omitempty"`
	Employer          string `firestore:"employer,omitempty" json:"employer,omitempty"`
	MonthlyIncome     string `firestore:"monthlyIncome,omitempty" json:"monthlyIncome,omitempty"`
}

type AccountApplication struct {
	ID string `firestore:"id" json:"id"`
	ApplicantDetails
	AccountType     string    `firestore:"accountType" json:"accountType"`
	NomineeName     string    `firestore:"nomineeName,omitempty" json:"nomineeName,omitempty"`
	NomineeRelation string    `firestore:"nomineeRelation,omitempty" json:"nomineeRelation,omitempty"`
	Documents       Documents `firestore:"documents" json:"documents"`
	Status          string    `firestore:"status" json:"status"`
	Remarks         string    `firestore:"remarks,omitempty" json:"remarks,omitempty"`
	SubmittedAt     time.Time `firestore:"submittedAt" json:"submittedAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type LoanApplication struct {
	ID string `firestore:"id" json:"id"`
	ApplicantDetails
	LoanType       string    `firestore:"loanType" json:"loanType"`
	LoanAmount     string    `firestore:"loanAmount" json:"loanAmount"`
	LoanPurpose    string    `firestore:"loanPurpose" json:"loanPurpose"`
	LoanTerm       string    `firestore:"loanTerm" json:"loanTerm"`
	Collateral     string    `firestore:"collateral,omitempty" json:"collateral,omitempty"`
	GuarantorName  string    `firestore:"guarantorName,omitempty" json:"guarantorName,omitempty"`
	GuarantorPhone string    `firestore:"guarantorPhone,omitempty" json:"guarantorPhone,omitempty"`
	Documents      Documents `firestore:"documents" json:"documents"`
	Status         string    `firestore:"status" json:"status"`
	Remarks        string    `firestore:"remarks,omitempty" json:"remarks,omitempty"`
	SubmittedAt    time.Time `firestore:"submittedAt" json:"submittedAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Documents maps an upload field name (profilePhoto, citizenshipFront, ...)
// to the stored file.
type Documents map[string]Attachment
