package companion

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownItem = errors.New("unknown catalog item")

type CatalogItem struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Rarity   Rarity      `json:"rarity"`
	Price    int         `json:"price"`
	Effects  []StatDelta `json:"effects"`
}

type Catalog []CatalogItem

func (c Catalog) Find(name string) (CatalogItem, bool) {
	name = strings.TrimSpace(name)
	for _, item := range c {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// ApplyItemEffects applies an item's stat effects once per unit used.
func ApplyItemEffects(state State, item CatalogItem, quantity int) (State, ActionEffectResult) {
	next := state.Clone()
	result := ActionEffectResult{
		Success:    true,
		StatDeltas: map[StatKey]int{},
	}
	for i := 0; i < quantity; i++ {
		applyStatDeltas(&next.Stats, item.Effects, result.StatDeltas)
	}
	unit := "a " + item.Name
	if quantity > 1 {
		unit = fmt.Sprintf("%d x %s", quantity, item.Name)
	}
	result.Message = fmt.Sprintf("%s enjoys %s.", next.DisplayName(), unit)
	result.Messages = []string{result.Message}
	return next, result
}

var DefaultCatalog = Catalog{
	{Name: "cookie", Category: "food", Rarity: RarityCommon, Price: 5, Effects: []StatDelta{{StatAppetite, -15}, {StatMood, 5}}},
	{Name: "marshmallow", Category: "food", Rarity: RarityCommon, Price: 8, Effects: []StatDelta{{StatAppetite, -10}, {StatMood, 10}}},
	{Name: "honey cake", Category: "food", Rarity: RarityUncommon, Price: 20, Effects: []StatDelta{{StatAppetite, -30}, {StatMood, 15}, {StatEnergy, 5}}},
	{Name: "espresso beans", Category: "drink", Rarity: RarityUncommon, Price: 15, Effects: []StatDelta{{StatCoffee, 30}, {StatEnergy, 10}, {StatSleep, -10}}},
	{Name: "silk brush", Category: "care", Rarity: RarityRare, Price: 40, Effects: []StatDelta{{StatFluffiness, 35}, {StatMood, 5}}},
	{Name: "lavender pillow", Category: "care", Rarity: RarityRare, Price: 35, Effects: []StatDelta{{StatSleep, -30}, {StatMood, 10}}},
	{Name: "star lantern", Category: "toy", Rarity: RarityLegendary, Price: 120, Effects: []StatDelta{{StatMood, 40}, {StatEnergy, 15}}},
}
