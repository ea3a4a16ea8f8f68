package domain

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// DefaultCapitalOverrides returns the built-in coordinate overrides,
// keyed by lowercase country name. These countries share a name with a
// river, a state, or an island group, so free-text geocoding resolves
// them ambiguously; the capital's coordinates are used instead.
func DefaultCapitalOverrides() map[string]Coordinates {
	return map[string]Coordinates{
		"canada": {Lat: 45.4215, Lon: -75.6972},  // Ottawa
		"brazil": {Lat: -15.7801, Lon: -47.9292}, // Brasília
		"niger":  {Lat: 13.5137, Lon: 2.1098},    // Niamey
		"palau":  {Lat: 7.5000, Lon: 134.6241},   // Ngerulmud
	}
}

// Countries returns the default list of countries the forecast fetcher
// refreshes when no explicit list is configured.
func Countries() []string {
	return []string{
		"Afghanistan", "Albania", "Algeria", "Andorra", "Angola", "Antigua and Barbuda",
		"Argentina", "Armenia", "Australia", "Austria", "Azerbaijan", "Bahamas", "Bahrain",
		"Bangladesh", "Barbados", "Belarus", "Belgium", "Belize", "Benin", "Bhutan",
		"Bolivia", "Bosnia and Herzegovina", "Botswana", "Brazil", "Brunei", "Bulgaria",
		"Burkina Faso", "Burundi", "Cambodia", "Cameroon", "Canada", "Cape Verde",
		"Central African Republic", "Chad", "Chile", "China", "Colombia", "Comoros",
		"Congo", "Costa Rica", "Croatia", "Cuba", "Cyprus", "Czech Republic", "Denmark",
		"Djibouti", "Dominica", "Dominican Republic", "East Timor", "Ecuador", "Egypt",
		"El Salvador", "Equatorial Guinea", "Eritrea", "Estonia", "Eswatini", "Ethiopia",
		"Fiji", "Finland", "France", "Gabon", "Gambia", "Georgia", "Germany", "Ghana",
		"Greece", "Grenada", "Guatemala", "Guinea", "Guinea-Bissau", "Guyana", "Haiti",
		"Honduras", "Hungary", "Iceland", "India", "Indonesia", "Iran", "Iraq", "Ireland",
		"Israel", "Italy", "Jamaica", "Japan", "Jordan", "Kazakhstan", "Kenya", "Kiribati",
		"Kuwait", "Kyrgyzstan", "Laos", "Latvia", "Lebanon", "Lesotho", "Liberia", "Libya",
		"Liechtenstein", "Lithuania", "Luxembourg", "Madagascar", "Malawi", "Malaysia",
		"Maldives", "Mali", "Malta", "Marshall Islands", "Mauritania", "Mauritius",
		"Mexico", "Micronesia", "Moldova", "Monaco", "Mongolia", "Montenegro", "Morocco",
		"Mozambique", "Myanmar", "Namibia", "Nauru", "Nepal", "Netherlands", "New Zealand",
		"Nicaragua", "Niger", "Nigeria", "North Korea", "North Macedonia", "Norway", "Oman",
		"Pakistan", "Palau", "Panama", "Papua New Guinea", "Paraguay", "Peru", "Philippines",
		"Poland", "Portugal", "Qatar", "Romania", "Russia", "Rwanda", "Saint Kitts and Nevis",
		"Saint Lucia", "Saint Vincent and the Grenadines", "Samoa", "San Marino",
		"Sao Tome and Principe", "Saudi Arabia", "Senegal", "Serbia", "Seychelles",
		"Sierra Leone", "Singapore", "Slovakia", "Slovenia", "Solomon Islands", "Somalia",
		"South Africa", "South Korea", "South Sudan", "Spain", "Sri Lanka", "Sudan",
		"Suriname", "Sweden", "Switzerland", "Syria", "Taiwan", "Tajikistan", "Tanzania",
		"Thailand", "Togo", "Tonga", "Trinidad and Tobago", "Tunisia", "Turkey",
		"Turkmenistan", "Tuvalu", "Uganda", "Ukraine", "United Arab Emirates",
		"United Kingdom", "United States", "Uruguay", "Uzbekistan", "Vanuatu",
		"Vatican City", "Venezuela", "Vietnam", "Yemen", "Zambia", "Zimbabwe",
	}
}
