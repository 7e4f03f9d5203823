package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTargetForMode - Cada modo roteia para o seu produto
func TestTargetForMode(t *testing.T) {
	assert.Equal(t, TargetZappy, TargetForMode(ModeZappy))
	assert.Equal(t, TargetLojaky, TargetForMode(ModeLojaky))
}

// TestCategoriesForMode - As listas são distintas e nenhuma é vazia
func TestCategoriesForMode(t *testing.T) {
	zappy := CategoriesForMode(ModeZappy)
	lojaky := CategoriesForMode(ModeLojaky)

	assert.NotEmpty(t, zappy)
	assert.NotEmpty(t, lojaky)
	assert.Contains(t, zappy, "Pizzarias")
	assert.Contains(t, lojaky, "Lojas de roupas")
	assert.NotContains(t, lojaky, "Pizzarias")
}

// TestBuildLocationsAllCities - Sem filtro, toda cidade entra com seus bairros
func TestBuildLocationsAllCities(t *testing.T) {
	locations := BuildLocations(nil)

	assert.Contains(t, locations, "Olinda, PE")
	assert.Contains(t, locations, "Casa Caiada, Olinda, PE")
	assert.Contains(t, locations, "Timbi, Camaragibe, PE")
	assert.Contains(t, locations, "São Lourenço da Mata, PE")

	// A busca pela cidade inteira vem antes dos bairros dela.
	idxCity := indexOf(locations, "Olinda, PE")
	idxBairro := indexOf(locations, "Carmo, Olinda, PE")
	assert.Less(t, idxCity, idxBairro)
}

// TestBuildLocationsFilterByCity - Filtro por substring restringe a varredura
func TestBuildLocationsFilterByCity(t *testing.T) {
	locations := BuildLocations([]string{"camaragibe"})

	assert.Contains(t, locations, "Camaragibe, PE")
	assert.Contains(t, locations, "Aldeia dos Camarás, Camaragibe, PE")
	for _, loc := range locations {
		assert.True(t, strings.HasSuffix(loc, "Camaragibe, PE"), "localidade inesperada: %s", loc)
	}
}

// TestBuildLocationsUnknownFilterFallsBack - Filtro sem match cai no conjunto completo
func TestBuildLocationsUnknownFilterFallsBack(t *testing.T) {
	locations := BuildLocations([]string{"Gotham"})

	assert.Equal(t, BuildLocations(nil), locations)
}

func indexOf(list []string, item string) int {
	for i, v := range list {
		if v == item {
			return i
		}
	}
	return -1
}
