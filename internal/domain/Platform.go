package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Platform identifica a plataforma de anúncios de uma conta
type Platform string

const (
	PlatformMeta   Platform = "meta"
	PlatformGoogle Platform = "google"
)

var (
	ErrUnknownPlatform  = errors.New("plataforma desconhecida")
	ErrInvalidAccountID = errors.New("id de conta de anúncios inválido")
)

// PlatformCapabilities concentra tudo o que varia entre as plataformas de anúncios.
// Adicionar uma nova plataforma significa implementar esta interface e registrá-la em platformRegistry.
type PlatformCapabilities interface {
	Name() Platform
	// ResolveAccountID retorna o id externo da conta principal do cliente na plataforma
	ResolveAccountID(client *Client) string
	// StandingBudget retorna o orçamento mensal padrão do cliente na plataforma
	StandingBudget(client *Client) float64
	NormalizeAccountID(accountID string) string
	AccountIDPattern() *regexp.Regexp
	ValidateAccountID(accountID string) error
}

var platformRegistry = map[Platform]PlatformCapabilities{
	PlatformMeta:   metaCapabilities{},
	PlatformGoogle: googleCapabilities{},
}

// CapabilitiesFor retorna as capacidades de uma plataforma suportada
func CapabilitiesFor(p Platform) (PlatformCapabilities, error) {
	caps, ok := platformRegistry[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
	}
	return caps, nil
}

// ParsePlatform converte uma string (case-insensitive) em Platform
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, err := CapabilitiesFor(p); err != nil {
		return "", err
	}
	return p, nil
}

// SupportedPlatforms lista as plataformas registradas em ordem estável
func SupportedPlatforms() []Platform {
	return []Platform{PlatformGoogle, PlatformMeta}
}

func (p Platform) String() string {
	return string(p)
}

var (
	googleAccountIDPattern = regexp.MustCompile(`^\d{8,12}$`)
	metaAccountIDPattern   = regexp.MustCompile(`^\d{5,20}$`)
)

type googleCapabilities struct{}

func (googleCapabilities) Name() Platform { return PlatformGoogle }

func (googleCapabilities) ResolveAccountID(client *Client) string {
	if client == nil || client.GoogleAccountID == nil {
		return ""
	}
	return *client.GoogleAccountID
}

func (googleCapabilities) StandingBudget(client *Client) float64 {
	if client == nil {
		return 0
	}
	return client.GoogleAdsBudget
}

// NormalizeAccountID remove os hífens do formato exibido no Google Ads (123-456-7890)
func (googleCapabilities) NormalizeAccountID(accountID string) string {
	return strings.ReplaceAll(strings.TrimSpace(accountID), "-", "")
}

func (googleCapabilities) AccountIDPattern() *regexp.Regexp { return googleAccountIDPattern }

func (g googleCapabilities) ValidateAccountID(accountID string) error {
	return validateAccountID(g, accountID)
}

type metaCapabilities struct{}

func (metaCapabilities) Name() Platform { return PlatformMeta }

func (metaCapabilities) ResolveAccountID(client *Client) string {
	if client == nil || client.MetaAccountID == nil {
		return ""
	}
	return *client.MetaAccountID
}

func (metaCapabilities) StandingBudget(client *Client) float64 {
	if client == nil {
		return 0
	}
	return client.MetaAdsBudget
}

// NormalizeAccountID remove o prefixo act_ usado pela Graph API
func (metaCapabilities) NormalizeAccountID(accountID string) string {
	return strings.TrimPrefix(strings.TrimSpace(accountID), "act_")
}

func (metaCapabilities) AccountIDPattern() *regexp.Regexp { return metaAccountIDPattern }

func (m metaCapabilities) ValidateAccountID(accountID string) error {
	return validateAccountID(m, accountID)
}

func validateAccountID(caps PlatformCapabilities, accountID string) error {
	if accountID == "" {
		return fmt.Errorf("%w: vazio", ErrInvalidAccountID)
	}
	if !caps.AccountIDPattern().MatchString(caps.NormalizeAccountID(accountID)) {
		return fmt.Errorf("%w: %q não corresponde ao formato da plataforma %s", ErrInvalidAccountID, accountID, caps.Name())
	}
	return nil
}
