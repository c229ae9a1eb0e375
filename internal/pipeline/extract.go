package pipeline

import "pubfinder/internal"

// RegistryDOISet collects the normalized DOIs of every electronic version
// across all registry records. Entries without a DOI are skipped.
func RegistryDOISet(records []internal.RegistryRecord) map[string]struct{} {
	dois := make(map[string]struct{})
	for _, record := range records {
		for _, version := range record.ElectronicVersions {
			if version.DOI == nil || *version.DOI == "" {
				continue
			}
			dois[internal.NormalizeDOI(*version.DOI)] = struct{}{}
		}
	}
	return dois
}
