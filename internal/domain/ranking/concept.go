package ranking

import "regexp"

// ConceptSuffixPattern matches the variant suffixes stripped from a raw concept.
// Shared with the SQL builders so both paths normalize identically.
const ConceptSuffixPattern = `(_var_acum_[0-9]+|_var_[0-9]+|_acum|_ttm)+$`

var conceptSuffix = regexp.MustCompile(ConceptSuffixPattern)

// NormalizeConcept strips variant suffixes (_var_<n>, _acum, _ttm, _var_acum_<n>).
// Stacked suffixes are removed together, so NormalizeConcept is idempotent.
func NormalizeConcept(concept string) string {
	return conceptSuffix.ReplaceAllString(concept, "")
}
