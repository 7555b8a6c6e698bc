package database

import (
	"context"
	"testing"

	"ixfguard/internal/domain"
)

func TestListActivePrefixesExcludesLANAndDeleted(t *testing.T) {
	db := setupTestDB(t)
	_, lanA := createTestExchange(t, db, "IX A")
	_, lanB := createTestExchange(t, db, "IX B")

	prefixes := []domain.IXLanPrefix{
		{IXLanID: lanA.ID, Protocol: domain.ProtocolIPv4, Prefix: "198.32.125.0/24", Status: domain.StatusOK},
		{IXLanID: lanA.ID, Protocol: domain.ProtocolIPv6, Prefix: "2001:7f8:1::/64", Status: domain.StatusPending},
		{IXLanID: lanA.ID, Protocol: domain.ProtocolIPv4, Prefix: "80.81.192.0/21", Status: domain.StatusDeleted},
		{IXLanID: lanB.ID, Protocol: domain.ProtocolIPv4, Prefix: " 195.69.144.0/22 "},
	}
	for i := range prefixes {
		if err := SaveIXLanPrefix(db, &prefixes[i]); err != nil {
			t.Fatalf("save prefix: %v", err)
		}
	}

	got, err := Prefixes(db).ListActivePrefixes(context.Background(), lanB.ID)
	if err != nil {
		t.Fatalf("ListActivePrefixes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 prefixes, got %d: %+v", len(got), got)
	}
	if got[0].Prefix != "198.32.125.0/24" || got[1].Prefix != "2001:7f8:1::/64" {
		t.Fatalf("unexpected order or content: %+v", got)
	}

	all, err := ListIXLanPrefixes(db, lanB.ID)
	if err != nil {
		t.Fatalf("ListIXLanPrefixes: %v", err)
	}
	if len(all) != 1 || all[0].Prefix != "195.69.144.0/22" || all[0].Status != domain.StatusOK {
		t.Fatalf("expected canonical ok prefix, got %+v", all)
	}
}

func TestPrefixLookupFallsBackToDB(t *testing.T) {
	db := setupTestDB(t)
	_, lan := createTestExchange(t, db, "IX A")

	pfx := domain.IXLanPrefix{IXLanID: lan.ID, Protocol: domain.ProtocolIPv4, Prefix: "198.32.125.0/24"}
	if err := SaveIXLanPrefix(db, &pfx); err != nil {
		t.Fatalf("save prefix: %v", err)
	}

	got, err := Prefixes(nil).ListActivePrefixes(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListActivePrefixes: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 prefix, got %d", len(got))
	}
}
