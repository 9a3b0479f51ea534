package counterparty_test

import (
	"slices"
	"testing"

	"github.com/tlemoine/classeur/internal/categories"
	"github.com/tlemoine/classeur/internal/counterparty"
)

func TestDetectCategory(t *testing.T) {
	dir := counterparty.Directory{
		Suppliers: []string{"Dupont", "Martin Transports"},
		Clients:   []string{"Lefebvre", "Moreau"},
	}

	tests := []struct {
		name string
		text string
		dir  counterparty.Directory
		want categories.Category
		ok   bool
	}{
		{
			name: "supplier only",
			text: "Facture émise par Dupont SARL, Lyon",
			dir:  dir,
			want: categories.Supplier,
			ok:   true,
		},
		{
			name: "client only",
			text: "À l'attention de Moreau, service comptable",
			dir:  dir,
			want: categories.Client,
			ok:   true,
		},
		{
			name: "both sides ambiguous",
			text: "Dupont livre chez Moreau",
			dir:  dir,
			ok:   false,
		},
		{
			name: "no match",
			text: "Relevé bancaire du mois de mars",
			dir:  dir,
			ok:   false,
		},
		{
			name: "partial word does not match",
			text: "Dupontel et fils",
			dir:  dir,
			ok:   false,
		},
		{
			name: "ignore word never matches",
			text: "Montant TOTAL de la facture",
			dir: counterparty.Directory{
				Suppliers: []string{"TOTAL"},
			},
			ok: false,
		},
		{
			name: "ignore word beside a real token still counts",
			text: "Fournisseur: Dupont SARL",
			dir: counterparty.Directory{
				Suppliers: []string{"Dupont", "SARL"},
			},
			want: categories.Supplier,
			ok:   true,
		},
		{
			name: "empty directory",
			text: "Facture Dupont",
			dir:  counterparty.Directory{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := counterparty.DetectCategory(tt.text, tt.dir)
			if ok != tt.ok {
				t.Fatalf("DetectCategory ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("DetectCategory = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLegacyList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"typical", "[ Dupont, Martin Transports, Lefebvre ]", []string{"Dupont", "Martin Transports", "Lefebvre"}},
		{"trailing comma", "[ Dupont,  ]", []string{"Dupont"}},
		{"empty list", "[  ]", nil},
		{"no brackets", "Dupont, Moreau", []string{"Dupont", "Moreau"}},
		{"blank", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := counterparty.ParseLegacyList(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseLegacyList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLegacyListsRoundTrip(t *testing.T) {
	dir := counterparty.Directory{
		Suppliers: []string{"Dupont", "Martin Transports"},
		Clients:   []string{"Moreau"},
	}

	suppliers, clients := dir.LegacyLists()

	if got := counterparty.ParseLegacyList(suppliers); !slices.Equal(got, dir.Suppliers) {
		t.Errorf("suppliers round trip = %v, want %v", got, dir.Suppliers)
	}
	if got := counterparty.ParseLegacyList(clients); !slices.Equal(got, dir.Clients) {
		t.Errorf("clients round trip = %v, want %v", got, dir.Clients)
	}
}
