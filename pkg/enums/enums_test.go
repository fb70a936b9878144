package enums

import "testing"

func TestParseDocumentType(t *testing.T) {
	if _, err := ParseDocumentType("invoice"); err != nil {
		t.Fatalf("invoice should parse: %v", err)
	}
	if _, err := ParseDocumentType("mixtape"); err == nil {
		t.Fatal("unknown document type should not parse")
	}
}

func TestPricingTierOrder(t *testing.T) {
	if !(PricingTierFree.Order() < PricingTierBasic.Order() && PricingTierBasic.Order() < PricingTierPremium.Order()) {
		t.Fatal("tier order must be free < basic < premium")
	}
	if PricingTier("gold").Order() != 0 {
		t.Fatal("unknown tiers rank lowest")
	}
	if !PricingTierPremium.Covers(PricingTierBasic) {
		t.Fatal("premium should cover basic")
	}
	if PricingTierFree.Covers(PricingTierPremium) {
		t.Fatal("free should not cover premium")
	}
}

func TestParseBillingDuration(t *testing.T) {
	for _, valid := range []string{"monthly", "yearly"} {
		if _, err := ParseBillingDuration(valid); err != nil {
			t.Fatalf("%s should parse: %v", valid, err)
		}
	}
	if _, err := ParseBillingDuration("weekly"); err == nil {
		t.Fatal("weekly should not parse")
	}
}
