package domain

import "time"

// ClientType classifies the kind of client relationship.
type ClientType string

const (
	ClientIndividual ClientType = "individual"
	ClientStartup    ClientType = "startup"
	ClientEnterprise ClientType = "enterprise"
	ClientAgency     ClientType = "agency"
)

// ValidClientType reports whether t is a known client type.
func ValidClientType(t ClientType) bool {
	switch t {
	case ClientIndividual, ClientStartup, ClientEnterprise, ClientAgency:
		return true
	}
	return false
}

// Client is a customer record owned by the user who created it.
type Client struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Company    string     `json:"company,omitempty"`
	Website    string     `json:"website,omitempty"`
	Address    string     `json:"address,omitempty"`
	ClientType ClientType `json:"client_type"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
