package models

// Validation bounds shared by models, services and request binding.
const (
	MinScore = 1
	MaxScore = 10

	UsernameMaxLen  = 150
	EmailMaxLen     = 254
	NameMaxLen      = 150
	TitleNameMaxLen = 256
	SlugMaxLen      = 50
)
