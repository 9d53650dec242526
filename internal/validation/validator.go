// =============================================================================
// Deposition Species Injector - Validation Engine
// =============================================================================
//
// This module checks the classification result before it is written. Nothing
// here stops a run: every finding is a warning that the converter logs.
//
// CHECKS:
//   1. Species names: each name is written between single quotes and
//      terminated by a comma, so names containing quotes, commas, markup
//      characters or whitespace would corrupt the list.
//   2. Duplicates: a name repeated within one list.
//   3. Target coverage: a category whose element is absent from the XML
//      document is silently dropped by the injector; report it.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ginjaninja78/depspec/internal/types"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Rule names used in ValidationError.Rule.
const (
	RuleEmptyName     = "empty_name"
	RuleUnsafeName    = "unsafe_name"
	RuleDuplicateName = "duplicate_name"
	RuleMissingTarget = "missing_target"
)

// ValidationError represents a single finding.
type ValidationError struct {
	// Category is the deposition list the finding concerns.
	Category types.Category

	// Species is the offending species name, if any.
	Species string

	// Rule is the check that was violated.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Species == "" {
		return fmt.Sprintf("[WARNING] %s: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("[WARNING] %s, species '%s': %s", e.Category, e.Species, e.Message)
}

// =============================================================================
// LIST VALIDATION
// =============================================================================

// ValidateLists checks every species name of every list.
//
// RETURNS:
//   - All findings, in category then list order. Empty when the lists are clean.
func ValidateLists(lists types.DepositionLists) []*ValidationError {
	var errs []*ValidationError

	for _, category := range types.Categories {
		seen := make(map[string]bool)

		for _, name := range lists.Get(category) {
			if msg := checkName(name); msg != "" {
				rule := RuleUnsafeName
				if name == "" {
					rule = RuleEmptyName
				}
				errs = append(errs, &ValidationError{
					Category: category,
					Species:  name,
					Rule:     rule,
					Message:  msg,
				})
				continue
			}

			key := strings.ToUpper(name)
			if seen[key] {
				errs = append(errs, &ValidationError{
					Category: category,
					Species:  name,
					Rule:     RuleDuplicateName,
					Message:  "appears more than once",
				})
			}
			seen[key] = true
		}
	}

	return errs
}

// checkName returns a message describing why a name cannot be written into a
// quoted list, or "" when it is fine.
func checkName(name string) string {
	if name == "" {
		return "empty species name"
	}
	for _, r := range name {
		switch {
		case r == '\'' || r == ',':
			return fmt.Sprintf("contains list delimiter %q", r)
		case r == '<' || r == '&':
			return fmt.Sprintf("contains markup character %q", r)
		case unicode.IsSpace(r):
			return "contains whitespace"
		case unicode.IsControl(r):
			return "contains control character"
		}
	}
	return ""
}

// =============================================================================
// TARGET COVERAGE
// =============================================================================

// TargetChecker reports whether a document holds an element with a tag.
// *xmlwriter.Document satisfies it.
type TargetChecker interface {
	Has(tag string) bool
}

// ValidateTargets reports non-empty categories whose element is missing from
// the document, since their species would never be written.
func ValidateTargets(doc TargetChecker, lists types.DepositionLists) []*ValidationError {
	var errs []*ValidationError

	for _, category := range types.Categories {
		if doc.Has(category.Tag()) {
			continue
		}
		if len(lists.Get(category)) == 0 {
			continue
		}
		errs = append(errs, &ValidationError{
			Category: category,
			Rule:     RuleMissingTarget,
			Message: fmt.Sprintf("no <%s> element in document, %d species not written",
				category.Tag(), len(lists.Get(category))),
		})
	}

	return errs
}

// FormatErrors formats findings for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation warnings."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d warning(s):\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
