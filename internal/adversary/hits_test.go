package adversary

import (
	"testing"

	"github.com/rawblock/pcn-simulator/pkg/models"
)

func hop(id models.NodeID) models.Hop {
	return models.Hop{NodeID: id}
}

func TestCountHitsTalliesTouchedPayments(t *testing.T) {
	adversaries := map[models.NodeID]bool{"mallory": true}

	p1 := &models.Payment{
		ID:        "p1",
		Succeeded: true,
		UsedPaths: []models.Path{{hop("alice"), hop("mallory"), hop("dina")}},
	}
	p2 := &models.Payment{
		ID:          "p2",
		Succeeded:   false,
		FailedPaths: []models.Path{{hop("alice"), hop("bob"), hop("dina")}},
	}

	hits, hitsSuccessful, perPayment := CountHits([]*models.Payment{p1, p2}, adversaries)
	if hits != 1 {
		t.Fatalf("expected 1 hit, got %d", hits)
	}
	if hitsSuccessful != 1 {
		t.Fatalf("expected 1 successful hit, got %d", hitsSuccessful)
	}
	if perPayment["p1"] != 1 {
		t.Fatalf("expected p1 to touch 1 adversary, got %d", perPayment["p1"])
	}
	if _, ok := perPayment["p2"]; ok {
		t.Fatal("p2 should not register a hit")
	}
}

func TestCountHitsNoAdversaries(t *testing.T) {
	p := &models.Payment{ID: "p1", UsedPaths: []models.Path{{hop("alice"), hop("dina")}}}
	hits, hitsSuccessful, perPayment := CountHits([]*models.Payment{p}, map[models.NodeID]bool{})
	if hits != 0 || hitsSuccessful != 0 || len(perPayment) != 0 {
		t.Fatal("expected no hits when the adversary set is empty")
	}
}
