package entity

// Category representa una categoría agrícola del catálogo (lista fija).
type Category struct {
	ID   string
	Name string
}

// CategoryMap restringe los nombres de producto válidos por categoría
// (catálogo agrícola estándar de la plataforma).
var CategoryMap = map[string][]string{
	"Céréales":                   {"Blé", "Riz", "Maïs", "Orge", "Avoine", "Sorgho"},
	"Légumineuses et oléagineux": {"Soja", "Haricots", "Pois", "Arachides", "Tournesol", "Colza"},
	"Fruits":                     {"Pommes", "Bananes", "Agrumes", "Mangues", "Raisins"},
	"Légumes":                    {"Tomates", "Carottes", "Oignons", "Choux", "Laitues"},
	"Tubercules et racines":      {"Pommes de terre", "Manioc", "Ignames", "Patates douces"},
	"Cultures industrielles":     {"Coton", "Canne à sucre", "Tabac", "Café", "Cacao", "Thé", "Caoutchouc"},
}

// Unidades de medida permitidas para productos.
const (
	UnitKilogram = "kg"
	UnitGram     = "g"
	UnitLiter    = "l"
)

// IsValidCategory indica si el nombre corresponde a una categoría del catálogo.
func IsValidCategory(name string) bool {
	_, ok := CategoryMap[name]
	return ok
}

// IsProductAllowed indica si el nombre de producto pertenece a la categoría.
func IsProductAllowed(category, productName string) bool {
	for _, n := range CategoryMap[category] {
		if n == productName {
			return true
		}
	}
	return false
}

// IsValidUnit indica si la unidad es una de las permitidas.
func IsValidUnit(unit string) bool {
	return unit == UnitKilogram || unit == UnitGram || unit == UnitLiter
}
