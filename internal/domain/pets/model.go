package pets

import "time"

// Species define las especies que genera el mock y acepta el alta.
// @Enum dog, cat, bird, hamster, fish
type Species string

const (
	SpeciesDog     Species = "dog"
	SpeciesCat     Species = "cat"
	SpeciesBird    Species = "bird"
	SpeciesHamster Species = "hamster"
	SpeciesFish    Species = "fish"
)

// AllSpecies en orden estable (lo usa el generador de mocks).
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesHamster, SpeciesFish}

// Pet es una mascota adoptable. Adopted y OwnerUserID los muta únicamente
// la transición atómica de adopción; el resto es perfil.
type Pet struct {
	ID string

	Name      string
	Species   Species
	BirthDate *time.Time

	Adopted     bool
	OwnerUserID string // presente solo una vez adoptada

	CreatedAt time.Time
	UpdatedAt time.Time
}
