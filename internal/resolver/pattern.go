package resolver

import "strings"

// Turkish letters whose upper/lower or encoding forms defeat naive
// case-folding (dotted/dotless I above all). Each is replaced with the
// single-character wildcard so the database's folding quirks cannot cause a
// false negative.
var turkishFolder = strings.NewReplacer(
	"İ", "_", "I", "_", "ı", "_", "i", "_",
	"Ş", "_", "ş", "_",
	"Ğ", "_", "ğ", "_",
	"Ü", "_", "ü", "_",
	"Ö", "_", "ö", "_",
	"Ç", "_", "ç", "_",
)

// wildcardPattern builds an ILIKE pattern joining the words in order with
// multi-character wildcards, Turkish-folded.
func wildcardPattern(words []string) string {
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = turkishFolder.Replace(w)
	}
	return "%" + strings.Join(folded, "%") + "%"
}
