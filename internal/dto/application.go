package dto

type ApplicantInput struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	Gender            string `json:"gender,omitempty"`
	Address           string `json:"address"`
	CitizenshipNumber string `json:"citizenshipNumber"`
	Occupation        string `json:"occupation,omitempty"`
	Employer          string `json:"employer,omitempty"`
	MonthlyIncome     string `json:"monthlyIncome,omitempty"`
}

type CreateAccountApplicationRequest struct {
	ApplicantInput
	AccountType     string `json:"accountType"`
	NomineeName     string `json:"nomineeName,omitempty"`
	NomineeRelation string `json:"nomineeRelation,omitempty"`
}

type CreateLoanApplicationRequest struct {
	ApplicantInput
	LoanType       string `json:"loanType"`
	LoanAmount     string `json:"loanAmount"`
	LoanPurpose    string `json:"loanPurpose"`
	LoanTerm       string `json:"loanTerm"`
	Collateral     string `json:"collateral,omitempty"`
	GuarantorName  string `json:"guarantorName,omitempty"`
	GuarantorPhone string `json:"guarantorPhone,omitempty"`
}

// UpdateStatusRequest changes a status. Remarks is only written when sent.
type UpdateStatusRequest struct {
	Status  string  `json:"status"`
	Remarks *string `json:"remarks,omitempty"`
}

// ApplicationFilter narrows application listings. Kind is the account type
// or loan type depending on the collection.
type ApplicationFilter struct {
	Status string
	Kind   string
	Search string
}

// Upload fields accepted on application submissions.
var (
	AccountDocumentFields = []string{"profilePhoto", "citizenshipFront", "citizenshipBack", "signature"}
	LoanDocumentFields    = []string{"profilePhoto", "citizenshipFront", "citizenshipBack", "incomeProof"}
)
