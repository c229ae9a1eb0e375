package internal

// FetchOutcome tags how a paginated fetch ended.
type FetchOutcome string

const (
	FetchComplete FetchOutcome = "complete"
	FetchPartial  FetchOutcome = "partial"
)

type ElectronicVersion struct {
	DOI *string `json:"doi"`
}

// RegistryRecord is one research output as returned by the registry search
// API. Only the fields needed for DOI extraction and diagnostics are decoded.
type RegistryRecord struct {
	UUID               *string             `json:"uuid"`
	ElectronicVersions []ElectronicVersion `json:"electronicVersions"`
}

type RegistryFetchResult struct {
	Records       []RegistryRecord
	Outcome       FetchOutcome
	PartialReason string
}

// InstitutionAuthor is one (author, affiliation) pair whose affiliation
// matched the configured institution. An author listed under several matching
// affiliations appears once per affiliation.
type InstitutionAuthor struct {
	DisplayName    string
	RawAffiliation string
	ORCID          *string
}

// Work is the shaped form of one aggregator work. Missing values stay nil or
// empty here; sentinel strings are rendered only at report emission.
type Work struct {
	ID              string
	DOIs            []string // normalized, empty when the work carries none
	Title           *string
	Authors         []InstitutionAuthor
	PublicationYear *int
	PublicationDate *string
	IsOA            bool
	OAStatus        *string
	OAURL           *string
	IsAccepted      bool
	IsPublished     bool
	License         *string
	PDFURL          *string
	SourceName      *string
	Type            *string
}

// SkippedWork records one aggregator work that could not be shaped, with
// enough context to investigate the payload afterwards.
type SkippedWork struct {
	WorkID  string
	Reason  string
	RawJSON string
}

type AggregatorFetchResult struct {
	Works   map[string]Work
	Skipped []SkippedWork
}

// MissingReportRow is the flattened projection of one work absent from the
// registry. Multi-valued fields are already joined; sentinels are already
// applied. Column order in the report follows field order here.
type MissingReportRow struct {
	DOI             string
	Title           string
	Authors         string
	Affiliations    string
	ORCIDs          string
	PublicationYear *int
	PublicationDate string
	IsOA            bool
	OAStatus        string
	OAURL           string
	Accepted        bool
	Published       bool
	License         string
	PDFURL          string
	Type            string
	Source          string
	Link            string
}
