package domain

// Genres is the fixed set of explore filters, in chip order
var Genres = []Genre{
	{ID: 28, Name: "Acción"},
	{ID: 12, Name: "Aventura"},
	{ID: 16, Name: "Animación"},
	{ID: 35, Name: "Comedia"},
	{ID: 80, Name: "Crimen"},
	{ID: 99, Name: "Documental"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Familiar"},
	{ID: 14, Name: "Fantasía"},
	{ID: 27, Name: "Terror"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Ciencia ficción"},
	{ID: 53, Name: "Suspenso"},
}

// LookupGenre returns the filter genre with the given id
func LookupGenre(id int) (Genre, bool) {
	for _, g := range Genres {
		if g.ID == id {
			return g, true
		}
	}
	return Genre{}, false
}
