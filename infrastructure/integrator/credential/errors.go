package credential

import "errors"

var (
	// ErrCredentialsIncomplete indica que faltam segredos no armazenamento; precisa de ação humana
	ErrCredentialsIncomplete = errors.New("credenciais incompletas")
	// ErrTokenRefreshFailed indica que todas as tentativas de renovação falharam
	ErrTokenRefreshFailed = errors.New("falha ao renovar token de acesso")
)
