package classify

import (
	"regexp"

	"github.com/vietddude/triage/internal/core/domain"
)

// Rule pairs a case-insensitive matcher with the classification applied
// when it is the first rule to match.
type Rule struct {
	Pattern        *regexp.Regexp
	Classification domain.Classification
}

// defaultRules is the ordered rule table. Order is part of the contract:
// rules are evaluated top to bottom and the first match wins, so more
// specific and more urgent patterns (security) sit above general ones
// (system).
var defaultRules = []Rule{
	{
		Pattern: regexp.MustCompile(`(?i)validation|invalid|required|missing`),
		Classification: domain.Classification{
			Category:        domain.CategoryValidation,
			Severity:        domain.SeverityLow,
			UserError:       true,
			UserMessage:     "Invalid input provided. Please check your request and try again.",
			SuggestedAction: "Inspect the rejected fields in the request payload",
			ErrorCode:       "VALIDATION_ERROR",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)unauthorized|forbidden|token|auth`),
		Classification: domain.Classification{
			Category:        domain.CategoryAuthentication,
			Severity:        domain.SeverityMedium,
			UserError:       true,
			UserMessage:     "Authentication failed. Please sign in and try again.",
			SuggestedAction: "Check token expiry and credential configuration",
			ErrorCode:       "AUTH_ERROR",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)rate limit|too many requests`),
		Classification: domain.Classification{
			Category:        domain.CategoryRateLimit,
			Severity:        domain.SeverityMedium,
			Retryable:       true,
			RequiresAlert:   true,
			UserMessage:     "Too many requests. Please try again shortly.",
			SuggestedAction: "Review client quotas and upstream rate limits",
			ErrorCode:       "RATE_LIMIT_ERROR",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)network|connection|timeout|enotfound|dns`),
		Classification: domain.Classification{
			Category:        domain.CategoryNetwork,
			Severity:        domain.SeverityHigh,
			Retryable:       true,
			RequiresAlert:   true,
			UserMessage:     "A network error occurred. Please try again.",
			SuggestedAction: "Check upstream connectivity and DNS resolution",
			ErrorCode:       "NETWORK_ERROR",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)database|mongo|connection pool`),
		Classification: domain.Classification{
			Category:        domain.CategoryDatabase,
			Severity:        domain.SeverityHigh,
			Retryable:       true,
			RequiresAlert:   true,
			UserMessage:     "A temporary storage error occurred. Please try again.",
			SuggestedAction: "Check document store availability and pool saturation",
			ErrorCode:       "DATABASE_ERROR",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)openai|external service|api error`),
		Classification: domain.Classification{
			Category:        domain.CategoryExternalService,
			Severity:        domain.SeverityHigh,
			Retryable:       true,
			RequiresAlert:   true,
			UserMessage:     "An upstream service is unavailable. Please try again later.",
			SuggestedAction: "Check provider status and API quota usage",
			ErrorCode:       "EXTERNAL_SERVICE_ERROR",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)security|malicious|injection|xss|csrf`),
		Classification: domain.Classification{
			Category:        domain.CategorySecurity,
			Severity:        domain.SeverityCritical,
			RequiresAlert:   true,
			UserMessage:     "The request could not be processed.",
			SuggestedAction: "Review request logs for injection or scripting attempts",
			ErrorCode:       "SECURITY_ERROR",
		},
	},
	{
		Pattern: regexp.MustCompile(`(?i)memory|disk|cpu|system|resource`),
		Classification: domain.Classification{
			Category:        domain.CategorySystem,
			Severity:        domain.SeverityCritical,
			RequiresAlert:   true,
			UserMessage:     "An internal error occurred. Please try again later.",
			SuggestedAction: "Check host memory, disk, and CPU pressure",
			ErrorCode:       "SYSTEM_ERROR",
		},
	},
}

// DefaultRules returns a copy of the built-in rule table.
func DefaultRules() []Rule {
	rules := make([]Rule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}
