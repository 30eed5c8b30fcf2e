package v1_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/kommunalcrm/treasury/internal/export"
	"github.com/kommunalcrm/treasury/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExport() {
	createTestOrganization(suite.T())

	tests := []struct {
		export   string
		query    string
		header   string
		rows     int
		contains string
	}{
		{"forecast", "&month=2026-06&horizon=3&history=2", "Monat;Einnahmen (EUR);Ausgaben (EUR);Lfd. Saldo (EUR);Prognose", 5, "2026-05;1.200,00;450,00;750,00;nein"},
		{"variance", "", "Budget;Typ;Kategorie;Ist (EUR);Plan (EUR);Abweichung (EUR);Abweichung (%);Bewertung", 1, "Miete 2026;Ausgabe;Raummiete;450,00;1.200,00;-750,00;-62,50;Unter Budget"},
		{"report", "&from=2026-05-01&to=2026-05-31", "Monat;Einnahmen (EUR);Ausgaben (EUR);Saldo (EUR)", 2, "Gesamt;1.200,00;450,00;750,00"},
		{"transactions", "", "Datum;Beschreibung;Typ;Kategorie;Betrag (EUR);Gegenpartei;Status", 3, "15.05.2026;Miete Mai;Ausgabe;Raummiete;450,00;;geplant"},
		{"levies", "", "Monat;Mandatsträger;Mandatsart;Gremium;Brutto (EUR);Abgabe (EUR);Status", 1, "2026-01;Erika Mustermann;;;1.500,00;150,00;bezahlt"},
		{"budgets", "", "Name;Typ;Kategorie;Betrag (EUR);Von;Bis", 1, "Miete 2026;Ausgabe;Raummiete;1.200,00;01.01.2026;31.12.2026"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.export, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/export/"+tt.export+"?organization=OV+Musterstadt"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			assert.Equal(t, export.ContentType, r.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(r.Header().Get("Content-Disposition"), `attachment; filename="`+tt.export+"-"))

			body := r.Body.String()
			assert.True(t, strings.HasPrefix(body, "\ufeff"+tt.header+"\n"), "body is %q", body)
			assert.Contains(t, body, tt.contains+"\n")

			lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
			assert.Len(t, lines, tt.rows+1)
		})
	}
}

func (suite *TestSuiteStandard) TestExportFails() {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Unknown export", "/v1/export/kontoauszug?organization=OV+Musterstadt", http.StatusNotFound},
		{"No organization", "/v1/export/transactions", http.StatusBadRequest},
		{"Report without range", "/v1/export/report?organization=OV+Musterstadt", http.StatusBadRequest},
		{"Forecast with invalid horizon", "/v1/export/forecast?organization=OV+Musterstadt&horizon=37", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com"+tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}
