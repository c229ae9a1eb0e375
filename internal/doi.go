package internal

import "strings"

const doiResolverPrefix = "https://doi.org/"

// NormalizeDOI maps a raw DOI string to its canonical comparison form: the
// string is lower-cased and a leading resolver prefix is stripped. Nothing
// else is touched, so normalization is idempotent.
func NormalizeDOI(doi string) string {
	return strings.TrimPrefix(strings.ToLower(doi), doiResolverPrefix)
}
