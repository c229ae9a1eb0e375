package pipeline

import (
	"sort"
	"strings"

	"pubfinder/internal"
)

// Sentinel strings rendered in the report for absent values. They exist only
// at this emission boundary; upstream the values are nil or empty.
const (
	sentinelNoDOI        = "No DOI"
	sentinelNoTitle      = "No Title"
	sentinelNotAvailable = "Not Available"
	sentinelUnknown      = "Unknown"
)

type ReconcileResult struct {
	Missing []internal.MissingReportRow
	// NoDOICount is how many aggregator works carried no DOI at all.
	NoDOICount int
}

// Reconcile partitions the aggregator works against the registry DOI set. A
// work is missing iff none of its normalized DOIs appear in the set; a work
// without any DOI is therefore always missing. Rows come out sorted by work
// ID so repeated runs produce identical reports.
func Reconcile(works map[string]internal.Work, registryDOIs map[string]struct{}) ReconcileResult {
	ids := make([]string, 0, len(works))
	for id := range works {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := ReconcileResult{Missing: make([]internal.MissingReportRow, 0)}
	for _, id := range ids {
		work := works[id]
		if len(work.DOIs) == 0 {
			result.NoDOICount++
		}
		if anyInSet(work.DOIs, registryDOIs) {
			continue
		}
		result.Missing = append(result.Missing, buildRow(work))
	}
	return result
}

func anyInSet(dois []string, set map[string]struct{}) bool {
	for _, doi := range dois {
		if _, ok := set[doi]; ok {
			return true
		}
	}
	return false
}

func buildRow(work internal.Work) internal.MissingReportRow {
	names := make([]string, 0, len(work.Authors))
	affiliations := make([]string, 0, len(work.Authors))
	orcids := make([]string, 0, len(work.Authors))
	for _, author := range work.Authors {
		names = append(names, author.DisplayName)
		affiliations = append(affiliations, author.RawAffiliation)
		if author.ORCID != nil {
			orcids = append(orcids, *author.ORCID)
		}
	}

	links := make([]string, 0, len(work.DOIs))
	for _, doi := range work.DOIs {
		links = append(links, "https://doi.org/"+doi)
	}

	return internal.MissingReportRow{
		DOI:             joinOr(work.DOIs, ", ", sentinelNoDOI),
		Title:           orSentinel(work.Title, sentinelNoTitle),
		Authors:         joinOr(names, "; ", sentinelNotAvailable),
		Affiliations:    joinOr(affiliations, "; ", sentinelNotAvailable),
		ORCIDs:          joinOr(orcids, "; ", sentinelNotAvailable),
		PublicationYear: work.PublicationYear,
		PublicationDate: orSentinel(work.PublicationDate, sentinelUnknown),
		IsOA:            work.IsOA,
		OAStatus:        orSentinel(work.OAStatus, sentinelUnknown),
		OAURL:           orSentinel(work.OAURL, sentinelNotAvailable),
		Accepted:        work.IsAccepted,
		Published:       work.IsPublished,
		License:         orSentinel(work.License, sentinelUnknown),
		PDFURL:          orSentinel(work.PDFURL, sentinelNotAvailable),
		Type:            orSentinel(work.Type, sentinelUnknown),
		Source:          orSentinel(work.SourceName, sentinelUnknown),
		Link:            joinOr(links, ", ", sentinelNoDOI),
	}
}

func joinOr(values []string, sep, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, sep)
}

func orSentinel(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
