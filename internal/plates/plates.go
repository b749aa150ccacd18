package plates

import "strings"

// PlateLength é o tamanho fixo de uma placa normalizada (padrão antigo e Mercosul).
const PlateLength = 7

// Normalize remove tudo que não for letra ou dígito e converte para maiúsculas.
// "abc-1234" e "ABC 1234" viram "ABC1234".
func Normalize(plate string) string {
	var b strings.Builder
	b.Grow(len(plate))

	for _, r := range plate {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - ('a' - 'A'))
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}

	return b.String()
}

// IsValid aceita apenas placas já normalizadas com exatamente 7 caracteres.
func IsValid(plate string) bool {
	return len(plate) == PlateLength && plate == Normalize(plate)
}
