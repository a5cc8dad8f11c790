package wizard

import (
	"regexp"
	"strings"
)

type InputType string

const (
	InputSelfService  InputType = "self_service"
	InputWeDoItForYou InputType = "we_do_it_for_you"
)

// ParseInputType converts a raw string, defaulting empty to self service.
func ParseInputType(s string) (InputType, bool) {
	switch InputType(strings.TrimSpace(s)) {
	case "":
		return InputSelfService, true
	case InputSelfService:
		return InputSelfService, true
	case InputWeDoItForYou:
		return InputWeDoItForYou, true
	}
	return "", false
}

// Draft is the working copy of a vacancy as the wizard sees it. Fields map
// 1:1 onto the persisted record; the struct is also the unit the snapshot
// serializes.
type Draft struct {
	PackageID string   `json:"package_id"`
	UpsellIDs []string `json:"upsell_ids"`

	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	EducationLevel string `json:"education_level"`
	SalaryMin      int    `json:"salary_min"`
	SalaryMax      int    `json:"salary_max"`
	ContactName    string `json:"contact_name"`
	ContactEmail   string `json:"contact_email"`
	ContactPhone   string `json:"contact_phone"`
}

// Permissive on purpose: local@domain.tld with a TLD of at least 2 chars.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// ValidEmail reports whether s passes the wizard's e-mail check.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// Errors maps field name to message. Recomputed wholesale on every advance
// attempt; pruned per field as the user edits.
type Errors map[string]string

// Clear drops the entry for a field, if any. Called when that field changes.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// contentRules lists the required step-2 fields per input type. The
// we-do-it-for-you variant only needs enough to brief the copywriter.
var contentRules = map[InputType][]string{
	InputSelfService:  {"title", "description", "location", "employment_type", "contact_name", "contact_email"},
	InputWeDoItForYou: {"title", "contact_email"},
}

func fieldValue(d Draft, field string) string {
	switch field {
	case "title":
		return d.Title
	case "description":
		return d.Description
	case "location":
		return d.Location
	case "employment_type":
		return d.EmploymentType
	case "education_level":
		return d.EducationLevel
	case "contact_name":
		return d.ContactName
	case "contact_email":
		return d.ContactEmail
	case "contact_phone":
		return d.ContactPhone
	}
	return ""
}

// ValidateStep runs the rule set of one step against the draft and returns
// the field→message map. An empty map means advancing is allowed.
func ValidateStep(step Step, t InputType, d Draft) Errors {
	errs := Errors{}
	switch step {
	case StepPackage:
		if strings.TrimSpace(d.PackageID) == "" {
			errs["package"] = "select a package to continue"
		}
	case StepContent:
		rules, ok := contentRules[t]
		if !ok {
			rules = contentRules[InputSelfService]
		}
		for _, f := range rules {
			if strings.TrimSpace(fieldValue(d, f)) == "" {
				errs[f] = "this field is required"
			}
		}
		if _, required := errs["contact_email"]; !required && strings.TrimSpace(d.ContactEmail) != "" {
			if !ValidEmail(d.ContactEmail) {
				errs["contact_email"] = "enter a valid e-mail address"
			}
		}
		if d.SalaryMin > 0 && d.SalaryMax > 0 && d.SalaryMax < d.SalaryMin {
			errs["salary_max"] = "maximum salary is below the minimum"
		}
	case StepPreview, StepSubmit:
		// Preview has nothing to validate; submit is gated separately
		// (package + credits/invoice details) by the controller.
	}
	return errs
}

// Completed reports which steps count as done for a draft, feeding CanJump,
// Clamp and the step indicator.
func Completed(t InputType, d Draft, submitted bool) map[Step]bool {
	done := map[Step]bool{}
	if len(ValidateStep(StepPackage, t, d)) == 0 {
		done[StepPackage] = true
	}
	if done[StepPackage] && len(ValidateStep(StepContent, t, d)) == 0 {
		done[StepContent] = true
	}
	if done[StepContent] {
		done[StepPreview] = true
	}
	if submitted {
		done[StepSubmit] = true
	}
	return done
}
