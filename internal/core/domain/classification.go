package domain

// Category is the domain bucket a failure belongs to.
type Category string

const (
	CategoryValidation      Category = "validation"
	CategoryAuthentication  Category = "authentication"
	CategoryBusinessLogic   Category = "business_logic"
	CategoryExternalService Category = "external_service"
	CategoryDatabase        Category = "database"
	CategoryNetwork         Category = "network"
	CategorySystem          Category = "system"
	CategorySecurity        Category = "security"
	CategoryRateLimit       Category = "rate_limit"
	CategoryUnknown         Category = "unknown"
)

// Severity ranks how urgent a failure is. Higher values are more urgent.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the log-friendly representation of a Severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Classification is the structured verdict for one error occurrence.
// It is produced fresh per classification and never mutated afterwards.
type Classification struct {
	Category         Category
	Severity         Severity
	Retryable        bool
	UserError        bool
	RequiresAlert    bool
	UserMessage      string
	TechnicalMessage string
	SuggestedAction  string
	ErrorCode        string
}

// MetricKey returns the composite counter key for this classification.
func (c Classification) MetricKey() string {
	return string(c.Category) + ":" + c.ErrorCode
}

// ErrorContext carries optional request context alongside a failure.
type ErrorContext struct {
	Operation string
	UserID    string
}
