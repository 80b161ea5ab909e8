package packages

var latexsym = map[string]string{
	"mho":      "℧",
	"Join":     "⨝",
	"Box":      "□",
	"Diamond":  "◇",
	"leadsto":  "⤳",
	"sqsubset": "⊏",
	"sqsupset": "⊐",
	"lhd":      "⊲",
	"unlhd":    "⊴",
	"rhd":      "⊳",
	"unrhd":    "⊵",
}

var gensymb = map[string]string{
	"degree":      "°",
	"celsius":     "℃",
	"perthousand": "‰",
	"ohm":         "Ω",
	"micro":       "μ",
}

var stix = map[string]string{
	"checkmark":      "✓",
	"varspadesuit":   "♤",
	"varheartsuit":   "♥",
	"vardiamondsuit": "♦",
	"varclubsuit":    "♧",
}
