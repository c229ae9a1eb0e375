package pipeline

import (
	"testing"

	"pubfinder/internal"
)

func sp(v string) *string { return &v }

func TestRegistryDOISetDedupesAcrossCase(t *testing.T) {
	records := []internal.RegistryRecord{
		{ElectronicVersions: []internal.ElectronicVersion{{DOI: sp("10.1000/ABC")}}},
		{ElectronicVersions: []internal.ElectronicVersion{{DOI: sp("https://doi.org/10.1000/abc")}}},
		{ElectronicVersions: []internal.ElectronicVersion{{DOI: nil}, {DOI: sp("")}}},
		{},
	}

	dois := RegistryDOISet(records)
	if len(dois) != 1 {
		t.Fatalf("expected 1 distinct DOI, got %d: %v", len(dois), dois)
	}
	if _, ok := dois["10.1000/abc"]; !ok {
		t.Fatalf("normalized DOI missing from set: %v", dois)
	}
}
