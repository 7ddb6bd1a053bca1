package catalog

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"clavis/utils"
)

// Flat per-item pricing: every cart line costs the same regardless of
// service, implementation type or seat count.
const (
	PricePerItem = 100.0
	Currency     = "EUR"
)

// Service is one entry of the IAM service catalog.
type Service struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Types       []string `json:"types"`
	UserTiers   []int    `json:"userTiers"`
}

var implementationTypes = []string{"Cloud", "On-Premises", "Hybrid"}

var services = []Service{
	{
		ID:          "sso",
		Title:       "Single Sign-On",
		Description: "Federated login across all company applications.",
		Types:       implementationTypes,
		UserTiers:   []int{50, 100, 500, 1000},
	},
	{
		ID:          "mfa",
		Title:       "Multi-Factor Authentication",
		Description: "TOTP, push and hardware-key second factors.",
		Types:       implementationTypes,
		UserTiers:   []int{50, 100, 500, 1000},
	},
	{
		ID:          "provisioning",
		Title:       "User Provisioning",
		Description: "SCIM-based account lifecycle automation.",
		Types:       implementationTypes,
		UserTiers:   []int{100, 500, 1000},
	},
	{
		ID:          "directory",
		Title:       "Directory Sync",
		Description: "Bidirectional sync with LDAP and Azure AD.",
		Types:       implementationTypes,
		UserTiers:   []int{100, 500, 1000},
	},
	{
		ID:          "audit",
		Title:       "Audit Logging",
		Description: "Tamper-evident access and change trails.",
		Types:       implementationTypes,
		UserTiers:   []int{50, 100, 500, 1000},
	},
	{
		ID:          "pam",
		Title:       "Privileged Access Management",
		Description: "Vaulted credentials and session recording for admins.",
		Types:       []string{"Cloud", "Hybrid"},
		UserTiers:   []int{10, 50, 100},
	},
}

// Services returns the catalog.
func Services() []Service {
	return services
}

// ItemLabel renders the descriptive cart line for a service choice:
// "<title> (<implementation type>, <n> users)". Cart items are these
// strings, compared by exact equality.
func ItemLabel(title, implType string, users int) string {
	return fmt.Sprintf("%s (%s, %d users)", title, implType, users)
}

// GetServices returns the IAM service catalog with pricing info.
func GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"services":     services,
		"pricePerItem": PricePerItem,
		"currency":     Currency,
	})
}
