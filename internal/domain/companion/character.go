package companion

type FavoriteCategory string

const (
	FavoriteCoffee    FavoriteCategory = "coffee"
	FavoriteSweet     FavoriteCategory = "sweet"
	FavoriteBookGenre FavoriteCategory = "book_genre"
	FavoriteColor     FavoriteCategory = "color"
)

var FavoriteOptions = map[FavoriteCategory][]string{
	FavoriteCoffee:    {"latte", "cappuccino", "flat white", "americano", "espresso"},
	FavoriteSweet:     {"marshmallow", "cookie", "honey cake", "macaron", "chocolate"},
	FavoriteBookGenre: {"fairy tales", "adventure", "mystery", "poetry", "science"},
	FavoriteColor:     {"amber", "lavender", "mint", "crimson", "midnight blue"},
}

// StrongestCoffee is what a coffee-lover always picks.
const StrongestCoffee = "espresso"

// traitFavorites overrides the random draw for traits with a fixed taste.
var traitFavorites = map[Trait]map[FavoriteCategory]string{
	TraitCoffeeLover: {FavoriteCoffee: StrongestCoffee},
	TraitBookworm:    {FavoriteBookGenre: "mystery"},
	TraitGourmet:     {FavoriteSweet: "honey cake"},
	TraitSleepyhead:  {FavoriteCoffee: "latte", FavoriteColor: "lavender"},
	TraitAdventurous: {FavoriteBookGenre: "adventure"},
}

const SecondaryTraitCount = 2

type GeneratedCharacter struct {
	Character Character
	Favorites Favorites
}

// GenerateCharacter is deterministic for a given random source.
func GenerateCharacter(rng Rand) GeneratedCharacter {
	primary := AllTraits[rng.IntN(len(AllTraits))]

	pool := make([]Trait, 0, len(AllTraits)-1)
	for _, t := range AllTraits {
		if t != primary {
			pool = append(pool, t)
		}
	}
	n := min(SecondaryTraitCount, len(pool))
	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	secondary := append([]Trait(nil), pool[:n]...)

	fav := Favorites{
		Coffee:    pick(rng, FavoriteOptions[FavoriteCoffee]),
		Sweet:     pick(rng, FavoriteOptions[FavoriteSweet]),
		BookGenre: pick(rng, FavoriteOptions[FavoriteBookGenre]),
		Color:     pick(rng, FavoriteOptions[FavoriteColor]),
	}
	for category, value := range traitFavorites[primary] {
		fav.set(category, value)
	}

	return GeneratedCharacter{
		Character: Character{Primary: primary, Secondary: secondary},
		Favorites: fav,
	}
}

func pick(rng Rand, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rng.IntN(len(options))]
}

func (f *Favorites) set(category FavoriteCategory, value string) {
	switch category {
	case FavoriteCoffee:
		f.Coffee = value
	case FavoriteSweet:
		f.Sweet = value
	case FavoriteBookGenre:
		f.BookGenre = value
	case FavoriteColor:
		f.Color = value
	}
}
