package config

// defaultCities is the closed city list offered in the profile wizard. It can
// be replaced wholesale through the yaml config.
func defaultCities() []string {
	return []string{
		"Aachen",
		"Augsburg",
		"Bergisch Gladbach",
		"Berlin",
		"Bielefeld",
		"Bochum",
		"Bonn",
		"Bottrop",
		"Braunschweig",
		"Bremen",
		"Bremerhaven",
		"Chemnitz",
		"Cottbus",
		"Darmstadt",
		"Dortmund",
		"Dresden",
		"Duisburg",
		"Düsseldorf",
		"Erfurt",
		"Erlangen",
		"Essen",
		"Frankfurt am Main",
		"Freiburg im Breisgau",
		"Fürth",
		"Gelsenkirchen",
		"Göttingen",
		"Hagen",
		"Halle (Saale)",
		"Hamburg",
		"Hamm",
		"Hannover",
		"Heidelberg",
		"Heilbronn",
		"Herne",
		"Hildesheim",
		"Ingolstadt",
		"Jena",
		"Karlsruhe",
		"Kassel",
		"Kiel",
		"Koblenz",
		"Köln",
		"Krefeld",
		"Leipzig",
		"Leverkusen",
		"Lübeck",
		"Ludwigshafen am Rhein",
		"Lünen",
		"Magdeburg",
		"Mainz",
		"Mannheim",
		"Mönchengladbach",
		"Mülheim an der Ruhr",
		"München",
		"Münster",
		"Neuss",
		"Nürnberg",
		"Oberhausen",
		"Offenbach am Main",
		"Oldenburg",
		"Osnabrück",
		"Paderborn",
		"Pforzheim",
		"Potsdam",
		"Recklinghausen",
		"Remscheid",
		"Reutlingen",
		"Rostock",
		"Saarbrücken",
		"Salzgitter",
		"Siegen",
		"Solingen",
		"Stuttgart",
		"Trier",
		"Ulm",
		"Wiesbaden",
		"Wolfsburg",
		"Wuppertal",
		"Würzburg",
	}
}
