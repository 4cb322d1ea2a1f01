package utils

// MaskSecret mantém só os primeiros caracteres de um segredo para uso em logs
func MaskSecret(s string) string {
	if len(s) <= 6 {
		return "***"
	}
	return s[:6] + "***"
}
