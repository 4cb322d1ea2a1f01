package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidPlatform     = "VAL_004" // Plataforma não suportada
	ErrInvalidAccountID    = "VAL_005" // Id de conta fora do formato da plataforma
	ErrNotFound            = "VAL_006" // Rota não encontrada
	ErrMethodNotAllowed    = "VAL_007" // Método não permitido

	// Erros de revisão de orçamento (3000-3999)
	ErrReviewNotFound        = "REV_001" // Revisão não encontrada
	ErrClientNotFound        = "REV_002" // Cliente não encontrado
	ErrCredentialsIncomplete = "REV_003" // Segredos da plataforma não configurados
	ErrTokenRefreshFailed    = "REV_004" // Renovação do token esgotou as tentativas
	ErrReviewFailed          = "REV_005" // Revisão falhou (ver detalhes)
	ErrSyncAlreadyRunning    = "REV_006" // Revisão em lote já em execução
	ErrUnknownCronJob        = "REV_007" // Tipo de job desconhecido
	ErrPlatformNotConfigured = "REV_008" // Plataforma sem integração configurada
	ErrReferentialIntegrity  = "REV_009" // Orçamento personalizado removido durante a gravação
	ErrInvalidDateRange      = "REV_010" // Intervalo de datas inválido

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInvalidPlatform:       http.StatusBadRequest,
	ErrInvalidAccountID:      http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrReviewNotFound:        http.StatusNotFound,
	ErrClientNotFound:        http.StatusNotFound,
	ErrCredentialsIncomplete: http.StatusFailedDependency,
	ErrTokenRefreshFailed:    http.StatusBadGateway,
	ErrReviewFailed:          http.StatusUnprocessableEntity,
	ErrSyncAlreadyRunning:    http.StatusConflict,
	ErrUnknownCronJob:        http.StatusNotFound,
	ErrPlatformNotConfigured: http.StatusServiceUnavailable,
	ErrReferentialIntegrity:  http.StatusConflict,
	ErrInvalidDateRange:      http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
