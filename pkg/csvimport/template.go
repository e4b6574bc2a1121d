package csvimport

import "strings"

// TemplateFileName is the download name offered for the generated example.
const TemplateFileName = "risico-import-template.csv"

var templateRows = [][]string{
	{"titel", "categorie", "beschrijving", "kans", "impact", "actie"},
	{"Vergunning vertraagd", "vergunningen", "Omgevingsvergunning wordt later verleend dan gepland", "3", "4", "Vooroverleg plannen met bevoegd gezag"},
	{"Onvoorziene bodemverontreiniging", "locatie", "Verontreinigde grond aangetroffen tijdens ontgraving", "2", "5", "Aanvullend bodemonderzoek uitvoeren"},
	{"Levertijd staalconstructie", "inkoop", "Levering staal schuift voorbij de bouwplanning", "3", "3", ""},
}

// Template generates the example import file. The output, unmodified, parses
// back with zero warnings and one risk per data row.
func Template() string {
	var sb strings.Builder
	for _, row := range templateRows {
		for i, field := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			if strings.Contains(field, ",") {
				sb.WriteByte('"')
				sb.WriteString(field)
				sb.WriteByte('"')
			} else {
				sb.WriteString(field)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
