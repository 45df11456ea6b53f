package extract

// Reference tables are package-level constants built once at startup. They are
// slices rather than maps so that matching order is deterministic and
// inspectable; tie-breaks are always first-match-in-declaration-order.

// knownProviders is the curated vendor set. A substring match against any of
// these yields a high-confidence provider.
var knownProviders = []string{
	"shell",
	"repsol",
	"cepsa",
	"galp",
	"petronor",
	"bp",
	"mcdonald",
	"burger king",
	"starbucks",
	"telepizza",
	"domino",
	"subway",
	"kfc",
	"vips",
	"uber",
	"cabify",
	"renfe",
	"iberia",
	"vueling",
	"ryanair",
	"alsa",
	"hertz",
	"avis",
	"europcar",
	"marriott",
	"hilton",
	"melia",
	"ibis",
	"nh hotel",
	"mercadona",
	"carrefour",
	"lidl",
	"walmart",
	"target",
	"costco",
	"amazon",
	"mediamarkt",
	"leroy merlin",
	"ikea",
	"staples",
	"office depot",
}

// providerLineBlacklist disqualifies header lines from the provider fallback.
var providerLineBlacklist = []string{"total", "subtotal", "tax", "date", "invoice"}

// categoryKeywords maps each non-default category to its keyword list. Order
// matters twice: category order breaks score ties, keyword order breaks
// provider-name ties.
var categoryKeywords = []struct {
	Category Category
	Keywords []string
}{
	{CategoryCombustible, []string{
		"gasolina", "gasoil", "diesel", "fuel", "gas station", "petrol",
		"combustible", "shell", "repsol", "cepsa", "galp", "petronor", "bp",
	}},
	{CategoryTransporte, []string{
		"taxi", "uber", "cabify", "bus", "metro", "tren", "train", "renfe",
		"vuelo", "flight", "iberia", "vueling", "ryanair", "parking", "peaje",
		"toll", "rent a car", "hertz", "avis", "europcar",
	}},
	{CategoryAlojamiento, []string{
		"hotel", "hostal", "motel", "airbnb", "booking", "lodging", "resort",
		"marriott", "hilton", "melia", "ibis", "alojamiento",
	}},
	{CategoryAlimentacion, []string{
		"restaurant", "restaurante", "cafe", "cafeteria", "bar", "comida",
		"menu", "pizzeria", "burger", "mcdonald", "starbucks", "telepizza",
		"food", "almuerzo", "cena", "desayuno", "supermercado", "mercadona",
		"carrefour", "lidl",
	}},
	{CategoryOficina, []string{
		"papeleria", "oficina", "office", "staples", "tinta", "toner",
		"impresora", "printer", "papel", "folios", "material de oficina",
	}},
	{CategoryMantenimiento, []string{
		"taller", "reparacion", "repair", "mantenimiento", "maintenance",
		"lavado", "itv", "revision", "neumatico", "tire",
	}},
	{CategoryEquipamiento, []string{
		"ferreteria", "hardware", "herramienta", "tools", "equipamiento",
		"equipment", "mediamarkt", "leroy merlin", "ikea", "electronica",
	}},
}

// currencySymbols maps currency symbols captured by amount patterns to ISO
// codes. Unrecognized captures fall back to the default currency.
var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}

// defaultCurrency is assumed when no currency marker is present.
const defaultCurrency = "USD"
