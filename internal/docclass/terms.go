package docclass

import "golang.org/x/text/language"

// supported lists the languages with a term table; the first is the
// fallback.
var supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
}

var matcher = language.NewMatcher(supported)

var termTables = []map[string]string{
	{
		"abstractname":   "Abstract",
		"appendixname":   "Appendix",
		"bibname":        "Bibliography",
		"chaptername":    "Chapter",
		"contentsname":   "Contents",
		"figurename":     "Figure",
		"indexname":      "Index",
		"listfigurename": "List of Figures",
		"listtablename":  "List of Tables",
		"partname":       "Part",
		"refname":        "References",
		"tablename":      "Table",
	},
	{
		"abstractname":   "Zusammenfassung",
		"appendixname":   "Anhang",
		"bibname":        "Literaturverzeichnis",
		"chaptername":    "Kapitel",
		"contentsname":   "Inhaltsverzeichnis",
		"figurename":     "Abbildung",
		"indexname":      "Index",
		"listfigurename": "Abbildungsverzeichnis",
		"listtablename":  "Tabellenverzeichnis",
		"partname":       "Teil",
		"refname":        "Literatur",
		"tablename":      "Tabelle",
	},
	{
		"abstractname":   "Résumé",
		"appendixname":   "Annexe",
		"bibname":        "Bibliographie",
		"chaptername":    "Chapitre",
		"contentsname":   "Table des matières",
		"figurename":     "Figure",
		"indexname":      "Index",
		"listfigurename": "Table des figures",
		"listtablename":  "Liste des tableaux",
		"partname":       "Partie",
		"refname":        "Références",
		"tablename":      "Table",
	},
	{
		"abstractname":   "Resumen",
		"appendixname":   "Apéndice",
		"bibname":        "Bibliografía",
		"chaptername":    "Capítulo",
		"contentsname":   "Índice general",
		"figurename":     "Figura",
		"indexname":      "Índice alfabético",
		"listfigurename": "Índice de figuras",
		"listtablename":  "Índice de cuadros",
		"partname":       "Parte",
		"refname":        "Referencias",
		"tablename":      "Cuadro",
	},
	{
		"abstractname":   "Sommario",
		"appendixname":   "Appendice",
		"bibname":        "Bibliografia",
		"chaptername":    "Capitolo",
		"contentsname":   "Indice",
		"figurename":     "Figura",
		"indexname":      "Indice analitico",
		"listfigurename": "Elenco delle figure",
		"listtablename":  "Elenco delle tabelle",
		"partname":       "Parte",
		"refname":        "Riferimenti bibliografici",
		"tablename":      "Tabella",
	},
}

// Terms returns the name table closest to lang.
func Terms(lang language.Tag) map[string]string {
	_, i, _ := matcher.Match(lang)
	return termTables[i]
}

// TermKeys returns the keys every term table defines.
func TermKeys() []string {
	keys := make([]string, 0, len(termTables[0]))
	for k := range termTables[0] {
		keys = append(keys, k)
	}
	return keys
}
